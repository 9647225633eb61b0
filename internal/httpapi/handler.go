// Package httpapi serves path searches over HTTP as JSON.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdrpinto/astargrid"
	"github.com/pdrpinto/astargrid/internal/cache"
	"github.com/pdrpinto/astargrid/internal/metrics"
)

// maxBodyBytes bounds the request body, grid included.
const maxBodyBytes = 4 << 20

type FindPathRequest struct {
	Grid []string `json:"grid"`
	// BlockedMarker overrides the handler's default marker when set.
	BlockedMarker string          `json:"blocked_marker"`
	Start         astargrid.Point `json:"start"`
	End           astargrid.Point `json:"end"`
}

type FindPathResponse struct {
	Success bool              `json:"success"`
	Path    []astargrid.Point `json:"path"`
	Error   string            `json:"error,omitempty"`
}

// Handler answers FindPathRequests. Cache and Metrics are optional.
type Handler struct {
	Cache   *cache.Cache
	Metrics *metrics.Metrics
	Logger  *zap.Logger

	// HeuristicName is part of the cache key and must match the heuristic
	// set in Options.
	HeuristicName string
	BlockedMarker rune
	Options       []astargrid.Option
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.NewNop()
	}
	return h.Logger
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodPost {
		writeResponse(w, http.StatusMethodNotAllowed, FindPathResponse{
			Error: fmt.Sprintf("method %s not allowed", r.Method),
		})
		return
	}

	logger := h.logger().With(zap.String("request_id", uuid.NewString()))

	var req FindPathRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Info("invalid request body", zap.Error(err))
		writeResponse(w, http.StatusBadRequest, FindPathResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}

	path, err := h.findPath(req, logger)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errInvalidRequest) || errors.Is(err, astargrid.ErrCoordinateOutOfBounds) {
			status = http.StatusBadRequest
		}
		logger.Info("request rejected", zap.Error(err))
		writeResponse(w, status, FindPathResponse{Error: err.Error()})
		return
	}

	writeResponse(w, http.StatusOK, FindPathResponse{Success: true, Path: path})
}

var errInvalidRequest = errors.New("invalid request")

func (h *Handler) findPath(req FindPathRequest, logger *zap.Logger) ([]astargrid.Point, error) {
	if len(req.Grid) == 0 {
		return nil, fmt.Errorf("%w: grid must not be empty", errInvalidRequest)
	}

	marker := h.BlockedMarker
	if marker == 0 {
		marker = astargrid.DefaultBlockedMarker
	}
	if req.BlockedMarker != "" {
		if utf8.RuneCountInString(req.BlockedMarker) != 1 {
			return nil, fmt.Errorf("%w: blocked_marker must be a single character", errInvalidRequest)
		}
		marker, _ = utf8.DecodeRuneInString(req.BlockedMarker)
	}
	grid := astargrid.NewGrid(req.Grid, astargrid.WithBlockedMarker(marker))

	var key []byte
	if h.Cache != nil {
		key = cache.Key(grid, h.HeuristicName, req.Start, req.End)
		path, hit := h.Cache.Get(key)
		h.Metrics.ObserveCache(hit)
		if hit {
			logger.Debug("cache hit", zap.Stringer("start", req.Start), zap.Stringer("end", req.End))
			return path, nil
		}
	}

	result, err := astargrid.Search(grid, req.Start, req.End, h.Options...)
	h.Metrics.ObserveSearch(result, err)
	if err != nil {
		return nil, err
	}
	logger.Debug("search finished",
		zap.Stringer("start", req.Start),
		zap.Stringer("end", req.End),
		zap.Bool("found", result.Found),
		zap.Int("expanded", result.ExpandedNodes),
	)

	if h.Cache != nil {
		if err := h.Cache.Put(key, result.Path); err != nil {
			logger.Warn("cache write failed", zap.Error(err))
		}
	}
	return result.Path, nil
}

func writeResponse(w http.ResponseWriter, status int, response FindPathResponse) {
	if response.Path == nil {
		response.Path = []astargrid.Point{}
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}
