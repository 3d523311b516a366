package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"shifttrack/internal/api"
	"shifttrack/internal/config"
	"shifttrack/internal/doctext"
	"shifttrack/internal/logging"
	"shifttrack/internal/notifications"
	"shifttrack/internal/store"
)

// Server hosts the HTTP API over the shift store.
type Server struct {
	bind   string
	logger *slog.Logger
	store  *store.Store

	shiftSvc    *api.ShiftService
	rateSvc     *api.RateService
	timelineSvc *api.TimelineService
	auditSvc    *api.AuditService

	listener net.Listener
	server   *http.Server
}

// New wires the API server from config. Returns nil when no bind address is
// configured, which disables the HTTP surface entirely.
func New(cfg *config.Config, st *store.Store, notifier notifications.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil || st == nil {
		return nil, nil
	}
	bind := strings.TrimSpace(cfg.Paths.APIBind)
	if bind == "" {
		return nil, nil
	}

	srv := &Server{
		bind:        bind,
		logger:      logger,
		store:       st,
		shiftSvc:    api.NewShiftService(st, cfg, notifier, logger),
		rateSvc:     api.NewRateService(st),
		timelineSvc: api.NewTimelineService(st, cfg),
		auditSvc:    api.NewAuditService(st, doctext.New(cfg, logger), notifier, logger),
	}

	token := strings.TrimSpace(cfg.Paths.APIToken)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/shifts", authMiddleware(token, srv.handleShifts))
	mux.HandleFunc("/api/shifts/", authMiddleware(token, srv.handleShift))
	mux.HandleFunc("/api/rates", authMiddleware(token, srv.handleRates))
	mux.HandleFunc("/api/rates/", authMiddleware(token, srv.handleRate))
	mux.HandleFunc("/api/series", authMiddleware(token, srv.handleSeries))
	mux.HandleFunc("/api/breakdown", authMiddleware(token, srv.handleBreakdown))
	mux.HandleFunc("/api/heatmap", authMiddleware(token, srv.handleHeatmap))
	mux.HandleFunc("/api/audit/extract", authMiddleware(token, srv.handleAuditExtract))
	mux.HandleFunc("/api/audit/reconcile", authMiddleware(token, srv.handleAuditReconcile))
	mux.HandleFunc("/api/audit/document", authMiddleware(token, srv.handleAuditDocument))
	mux.HandleFunc("/api/health", authMiddleware(token, srv.handleHealth))

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Start begins serving. The listener shuts down when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s == nil {
		return nil
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log().Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.log().Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop() {
	if s == nil {
		return
	}
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Addr reports the bound address once Start has succeeded.
func (s *Server) Addr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log().Error("failed to encode response", logging.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service sentinel errors onto status codes.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, api.ErrNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, api.ErrInvalidInput):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, doctext.ErrUnreadable):
		s.writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) log() *slog.Logger {
	if s.logger != nil {
		return s.logger.With(logging.String("component", "api-server"))
	}
	return logging.NewNop()
}
