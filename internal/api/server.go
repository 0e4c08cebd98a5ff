// internal/api/server.go
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"route-optimizer/internal/common/errors"
	"route-optimizer/internal/common/logger"
	"route-optimizer/internal/models"
	"route-optimizer/internal/optimizer"
)

const maxBodyBytes = 1 << 20

// Optimizer is the engine surface the API depends on.
type Optimizer interface {
	OptimizeRoute(ctx context.Context, req models.OptimizationRequest) (*models.OptimizationResult, error)
	OptimizeMultipleRoutes(ctx context.Context, reqs []models.OptimizationRequest) []models.BatchResult
}

// StatusReporter exposes the fallback service health snapshot.
type StatusReporter interface {
	GetSystemStatus(ctx context.Context) models.SystemStatus
}

// Server is the HTTP surface: optimization endpoints plus the health and
// metrics endpoints every deployment scrapes.
type Server struct {
	engine Optimizer
	status StatusReporter
	logger logger.Logger
}

func NewServer(engine Optimizer, status StatusReporter, log logger.Logger) *Server {
	return &Server{
		engine: engine,
		status: status,
		logger: log.WithFields(map[string]interface{}{"component": "api"}),
	}
}

// Handler builds the route mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/optimize", s.handleOptimize)
	mux.HandleFunc("/optimize/batch", s.handleOptimizeBatch)
	mux.HandleFunc("/status", s.handleStatus)

	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET", nil)
		return
	}
	writeJSON(w, http.StatusOK, s.status.GetSystemStatus(r.Context()))
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST", nil)
		return
	}

	body, ok := s.readAndValidate(w, r, optimizeRequestSchema)
	if !ok {
		return
	}

	var req models.OptimizationRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body", nil)
		return
	}

	result, err := s.engine.OptimizeRoute(r.Context(), req)
	if err != nil {
		s.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type batchRequest struct {
	Requests []models.OptimizationRequest `json:"requests"`
}

type batchResponse struct {
	Results    []models.BatchResult   `json:"results"`
	Statistics models.BatchStatistics `json:"statistics"`
}

func (s *Server) handleOptimizeBatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST", nil)
		return
	}

	body, ok := s.readAndValidate(w, r, batchRequestSchema)
	if !ok {
		return
	}

	var req batchRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body", nil)
		return
	}

	results := s.engine.OptimizeMultipleRoutes(r.Context(), req.Requests)
	writeJSON(w, http.StatusOK, batchResponse{
		Results:    results,
		Statistics: optimizer.GetOptimizationStatistics(results),
	})
}

// readAndValidate reads a bounded body and runs it through the schema.
// On failure the response is already written and ok is false.
func (s *Server) readAndValidate(w http.ResponseWriter, r *http.Request, schema string) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "INVALID_REQUEST", "request body too large", nil)
		return nil, false
	}

	fieldErrs, err := validatePayload(schema, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "malformed JSON body", nil)
		return nil, false
	}
	if len(fieldErrs) > 0 {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request failed schema validation", fieldErrs)
		return nil, false
	}
	return body, true
}

func (s *Server) writeEngineError(w http.ResponseWriter, err error) {
	if errors.IsValidationError(err) {
		writeError(w, http.StatusBadRequest, string(errors.CodeOf(err)), err.Error(), nil)
		return
	}

	s.logger.Error("optimization failed", map[string]interface{}{"error": err.Error()})
	writeError(w, http.StatusInternalServerError, string(errors.CodeOf(err)), err.Error(), nil)
}

type errorResponse struct {
	Success bool     `json:"success"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string, details []string) {
	writeJSON(w, status, errorResponse{
		Success: false,
		Code:    code,
		Message: message,
		Details: details,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
