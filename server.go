package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"i4.energy/across/btgw/hm1x"
)

// Server exposes a polling driver over HTTP. The driver is not safe for
// concurrent use, so the poll loop and every handler take mu.
type Server struct {
	Logger       *slog.Logger
	Driver       *hm1x.Driver
	PollInterval time.Duration

	mu     sync.Mutex
	router chi.Router
}

// NewServer returns a Server with its routes registered.
func NewServer(logger *slog.Logger, driver *hm1x.Driver, pollInterval time.Duration) *Server {
	s := &Server{
		Logger:       logger,
		Driver:       driver,
		PollInterval: pollInterval,
	}

	r := chi.NewRouter()
	r.Get("/status", s.handleStatus)
	r.Get("/version", s.handleVersion)
	r.Put("/name/{radio}", s.handleSetName)
	r.Post("/data", s.handleWriteData)
	r.Get("/data", s.handleReadData)
	r.Post("/probe", s.handleProbe)
	s.router = r
	return s
}

// ServeHTTP implements the http.Handler interface for the Server struct
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run polls the driver every PollInterval until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	if s.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %v", s.PollInterval)
	}
	ticker := time.NewTicker(s.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.poll(ctx); err != nil && ctx.Err() == nil {
				s.Logger.Warn("Poll failed", "error", err)
			}
		}
	}
}

func (s *Server) poll(ctx context.Context) (hm1x.PollResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.Driver.Poll(ctx)
	for {
		select {
		case event := <-s.Driver.Events():
			s.Logger.Info("Connection event", "kind", event.Kind, "address", event.Address)
		default:
			return res, err
		}
	}
}

func (s *Server) sendError(w http.ResponseWriter, message string, statusCode int) {
	if message == "" {
		w.WriteHeader(statusCode)
		return
	}

	type ErrorResponse struct {
		Message string `json:"message"`
	}
	resp := ErrorResponse{Message: message}
	s.sendJSON(w, resp, statusCode)
}

func (s *Server) sendJSON(w http.ResponseWriter, v any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// driverStatus maps a module error to an HTTP status.
func driverStatus(err error) int {
	switch {
	case errors.Is(err, hm1x.ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, hm1x.ErrAlreadyClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.Driver.State()
	polling := s.Driver.Polling()
	s.mu.Unlock()

	type StatusResponse struct {
		hm1x.State
		Polling bool `json:"polling"`
	}
	s.sendJSON(w, StatusResponse{State: state, Polling: polling}, http.StatusOK)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	version, err := s.Driver.Version(r.Context())
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to read version", "error", err)
		s.sendError(w, err.Error(), driverStatus(err))
		return
	}

	type VersionResponse struct {
		Version string `json:"version"`
	}
	s.sendJSON(w, VersionResponse{Version: version}, http.StatusOK)
}

func (s *Server) handleSetName(w http.ResponseWriter, r *http.Request) {
	radio, err := hm1x.ParseRadio(chi.URLParam(r, "radio"))
	if err != nil {
		s.sendError(w, "radio must be 'edr' or 'ble'", http.StatusNotFound)
		return
	}

	type NameRequest struct {
		Name string `json:"name"`
	}

	var req NameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" || len(req.Name) > hm1x.MaxNameLen {
		s.sendError(w, "'name' must be 1 to 28 characters", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err = s.Driver.SetName(r.Context(), radio, req.Name)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to set name", "error", err, "radio", radio)
		s.sendError(w, err.Error(), driverStatus(err))
		return
	}

	s.Logger.Info("Name set", "radio", radio, "name", req.Name)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleWriteData(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		s.sendError(w, "request body is empty", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	_, err = s.Driver.Write(body)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to write data", "error", err)
		s.sendError(w, err.Error(), driverStatus(err))
		return
	}

	s.Logger.Debug("Data written", "length", len(body))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleReadData(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	data, err := io.ReadAll(s.Driver)
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Failed to read data", "error", err)
		s.sendError(w, err.Error(), driverStatus(err))
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleProbe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	result, err := s.Driver.TestOrDisconnect(r.Context())
	s.mu.Unlock()
	if err != nil {
		s.Logger.Error("Probe failed", "error", err)
		s.sendError(w, err.Error(), driverStatus(err))
		return
	}

	type ProbeResponse struct {
		Result string `json:"result"`
	}
	s.sendJSON(w, ProbeResponse{Result: result.String()}, http.StatusOK)
}
