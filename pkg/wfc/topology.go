package wfc

import "iter"

// Neighbor is one adjacency of a cell: the direction leading to it and its index.
type Neighbor struct {
	Direction int
	Cell      int
}

// Topology describes the adjacency graph of the output.
//
// Every cell has at most MaxDegree neighbors, numbered by direction in
// [0, MaxDegree). Directions d and (d+MaxDegree/2)%MaxDegree are opposite
// unless the topology also implements Opposer. Neighbors must be restartable:
// the engine ranges over it once for every propagated ban.
type Topology interface {
	TotalSize() int
	MaxDegree() int
	Neighbors(cell int) iter.Seq[Neighbor]
}

// Opposer is implemented by topologies whose directions are not numbered in
// opposite halves.
type Opposer interface {
	Opposite(direction int) int
}

func oppositeTable(t Topology) []int {
	degree := t.MaxDegree()
	out := make([]int, degree)
	o, custom := t.(Opposer)
	for d := range out {
		if custom {
			out[d] = o.Opposite(d)
			continue
		}
		out[d] = (d + degree/2) % degree
	}
	return out
}
