// Package model builds pattern catalogs for the grid solver.
//
// A Catalog bundles the pattern table, the reverse index from anchor pixels to
// patterns, and the propagator consumed by wfc.New. Catalogs come either from
// an example image (Overlapping) or from explicit tile adjacency (Rules).
package model
