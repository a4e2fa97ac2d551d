// Package game2d provides miscellaneous objects that help support the
// development of 2D games.
//
// # Overview
//
// The root package holds the geometry primitives every 2D game needs:
// [Point] for positions, [Vec2] for displacements, and [Rect] for
// axis-aligned bounding boxes. Subpackages build on them:
//
//   - pool: a generational slot pool for managing collections of game
//     objects without fragmentation.
//   - grid: a spatial hash grid for associating items with regions of
//     space and querying them back.
//   - collide: a collision world that owns bodies and resolves their
//     movement against each other frame by frame.
//   - sprite: sprite-sheet drawing on top of the gogpu/gg rendering
//     context.
//   - level: declarative level files in HCL.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Logging
//
// game2d produces no log output by default. Call [SetLogger] to enable
// logging across the library and all its subpackages.
package game2d
