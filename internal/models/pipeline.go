// Package models defines the core data structures exchanged with API clients.
// It includes the pipeline wire types and the result of a pipeline check.
package models

// PipelineRequest is the envelope posted by the editor. The pipeline itself
// travels as a JSON document encoded in a string.
type PipelineRequest struct {
	Pipeline *string `json:"pipeline" validate:"required"`
}

type Pipeline struct {
	Nodes []Node `json:"nodes" validate:"dive"`
	Edges []Edge `json:"edges" validate:"dive"`
}

type Node struct {
	ID   NodeID         `json:"id" validate:"required"`
	Type string         `json:"type,omitempty"`
	Data map[string]any `json:"data,omitempty"`
}

type Edge struct {
	ID     string `json:"id,omitempty"`
	Source NodeID `json:"source" validate:"required"`
	Target NodeID `json:"target" validate:"required"`
}

// NodeIDs returns the declared node identifiers in declaration order.
func (p *Pipeline) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		ids = append(ids, n.ID)
	}
	return ids
}

type ParseResult struct {
	NumNodes int  `json:"num_nodes"`
	NumEdges int  `json:"num_edges"`
	IsDAG    bool `json:"is_dag"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
