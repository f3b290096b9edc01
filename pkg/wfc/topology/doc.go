// Package topology provides rectangular grid topologies for the wfc engine.
//
// Direction tables are laid out so that direction d and d+degree/2 are
// opposite, which is the convention wfc.Engine relies on.
package topology
