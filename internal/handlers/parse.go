// Package handlers provides HTTP request handlers for the API endpoints.
// It defines the routing logic, response formatting, and error handling mechanisms.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/pipelinecheck/core/internal/parser"
)

const DefaultMaxBodyBytes int64 = 10 << 20

// NewParseHandler returns the handler for POST /pipelines/parse. Bodies
// larger than maxBodyBytes are rejected; a non-positive limit uses
// DefaultMaxBodyBytes.
func NewParseHandler(logger hclog.Logger, maxBodyBytes int64) http.HandlerFunc {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}

		defer r.Body.Close()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			writeError(w, r, http.StatusBadRequest, "Failed to read body")
			return
		}

		req, err := parser.ParseRequest(body)
		if err != nil {
			logger.Debug("rejected request envelope", "error", err)
			writeParseError(w, r, logger, err)
			return
		}

		pipeline, err := parser.ParsePipeline([]byte(*req.Pipeline))
		if err != nil {
			logger.Debug("rejected pipeline", "error", err)
			writeParseError(w, r, logger, err)
			return
		}

		result := parser.Analyze(pipeline)
		logger.Info("pipeline checked",
			"num_nodes", result.NumNodes,
			"num_edges", result.NumEdges,
			"is_dag", result.IsDAG,
		)

		if err := writeJSON(w, r, http.StatusOK, result); err != nil {
			logger.Error("error encoding response", "error", err)
		}
	}
}

func writeParseError(w http.ResponseWriter, r *http.Request, logger hclog.Logger, err error) {
	switch {
	case errors.Is(err, parser.ErrInvalidJSON):
		writeError(w, r, http.StatusBadRequest, "Invalid JSON in pipeline data")
	case errors.Is(err, parser.ErrEmptyPipeline):
		writeError(w, r, http.StatusBadRequest, "Pipeline must contain at least one node")
	case errors.Is(err, parser.ErrInvalidPipeline):
		detail := strings.TrimPrefix(err.Error(), parser.ErrInvalidPipeline.Error()+": ")
		writeError(w, r, http.StatusBadRequest, "Invalid pipeline: "+detail)
	default:
		logger.Error("error parsing pipeline", "error", err)
		writeError(w, r, http.StatusInternalServerError, "Error parsing pipeline")
	}
}
