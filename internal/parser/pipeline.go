// Package parser provides utilities for parsing and transforming input data.
// It handles payload decoding, validation, and conversion into graph checks.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/pipelinecheck/core/internal/graph"
	"github.com/pipelinecheck/core/internal/models"
)

var (
	ErrInvalidJSON     = errors.New("invalid JSON")
	ErrEmptyPipeline   = errors.New("pipeline must contain at least one node")
	ErrInvalidPipeline = errors.New("invalid pipeline")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonFieldName(f)
	})
	// "required" fails only for an absent or null NodeID; a present "" is
	// validated as its quoted JSON form and passes
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		id, ok := field.Interface().(models.NodeID)
		if !ok || !id.IsSet() {
			return nil
		}
		raw, _ := id.MarshalJSON()
		return string(raw)
	}, models.NodeID{})
	return v
}

func ParseRequest(data []byte) (*models.PipelineRequest, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty request body", ErrInvalidJSON)
	}

	var req models.PipelineRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal request: %v", ErrInvalidJSON, err)
	}

	if err := validate.Struct(&req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPipeline, describe(err))
	}

	return &req, nil
}

func ParsePipeline(data []byte) (*models.Pipeline, error) {
	var p models.Pipeline
	if err := json.Unmarshal(data, &p); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || len(data) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}

	if len(p.Nodes) == 0 {
		return nil, ErrEmptyPipeline
	}

	if err := validate.Struct(&p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPipeline, describe(err))
	}

	return &p, nil
}

// Analyze runs the acyclicity check. NumNodes counts declared nodes as sent,
// duplicates included.
func Analyze(p *models.Pipeline) *models.ParseResult {
	return &models.ParseResult{
		NumNodes: len(p.Nodes),
		NumEdges: len(p.Edges),
		IsDAG:    graph.IsAcyclic(p.NodeIDs(), p.Edges),
	}
}
