// Package graph checks pipeline graphs for directed cycles.
package graph

import "github.com/pipelinecheck/core/internal/models"

type vertex struct {
	inDegree   int
	successors []models.NodeID
	declared   bool
}

// IsAcyclic reports whether every declared node can be placed in a
// topological order of the graph formed by nodes and edges. A declared node
// on a cycle, or downstream of one, makes the graph cyclic.
//
// Edge endpoints missing from nodes are traversed as implicit vertices.
// Duplicate edges each count toward in-degree, and a self-loop is a cycle.
// An empty node set is acyclic.
func IsAcyclic(nodes []models.NodeID, edges []models.Edge) bool {
	_, ok := TopologicalOrder(nodes, edges)
	return ok
}

// TopologicalOrder runs Kahn's algorithm and returns the vertices in the
// order they were removed, implicit endpoints included. The boolean is true
// when every declared node was removed, i.e. no declared node sits on or
// behind a cycle.
func TopologicalOrder(nodes []models.NodeID, edges []models.Edge) ([]models.NodeID, bool) {
	vertices := make(map[models.NodeID]*vertex, len(nodes))
	// keys in first-seen order keep the result deterministic
	keys := make([]models.NodeID, 0, len(nodes))

	lookup := func(id models.NodeID) *vertex {
		v, ok := vertices[id]
		if !ok {
			v = &vertex{}
			vertices[id] = v
			keys = append(keys, id)
		}
		return v
	}

	declared := 0
	for _, id := range nodes {
		v := lookup(id)
		if !v.declared {
			v.declared = true
			declared++
		}
	}

	for _, e := range edges {
		src := lookup(e.Source)
		dst := lookup(e.Target)
		src.successors = append(src.successors, e.Target)
		dst.inDegree++
	}

	queue := make([]models.NodeID, 0, len(keys))
	for _, id := range keys {
		if vertices[id].inDegree == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]models.NodeID, 0, len(keys))
	processed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		order = append(order, id)

		v := vertices[id]
		if v.declared {
			processed++
		}

		for _, next := range v.successors {
			s := vertices[next]
			s.inDegree--
			if s.inDegree == 0 {
				queue = append(queue, next)
			}
		}
	}

	return order, processed == declared
}
