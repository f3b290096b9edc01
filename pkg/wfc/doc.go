// Package wfc implements the Wave Function Collapse propagation engine.
//
// An Engine owns the wave (which patterns are still possible at each cell),
// the compatibility counters (how many still-possible neighbor patterns
// support a pattern in each direction) and a LIFO worklist of pending bans.
// Generation alternates observation, which collapses one cell chosen by a
// Heuristic to a single weighted-random pattern, and propagation, which
// drains the worklist until the wave is arc consistent or some cell has no
// pattern left.
//
// The grid shape is supplied through the Topology interface and the choice of
// the next cell through Heuristic, so square, toroidal or 3D grids and
// different selection policies plug in without touching the engine. State
// changes are reported synchronously to registered Observers.
//
// An Engine is not safe for concurrent use. Runs are deterministic for a
// given seed, topology, propagator and weights.
package wfc
