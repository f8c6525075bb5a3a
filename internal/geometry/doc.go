// Package geometry holds the stateless path math used by the route timeline:
// lengths, point-at-distance lookups, slicing, nearest-point projection,
// spline smoothing and synthetic flight arcs.
//
// Coordinates are orb.Point values in [lon, lat] order and distances are
// expressed in kilometres. None of the functions panic; degenerate input
// (empty paths, duplicate points, NaN) falls back to a safe value, usually the
// input itself.
package geometry
