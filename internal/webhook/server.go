package webhook

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/rahulsaklanii-code/formula-status-trigger/internal/web"
)

// Server is the inbound HTTP server.
type Server struct {
	config    Config
	filter    *Filter
	submitter EventSubmitter
	logger    *slog.Logger
	server    *http.Server
}

// New creates a webhook server instance.
func New(config Config, filter *Filter, submitter EventSubmitter, logger *slog.Logger) *Server {
	if config.MaxBodySize == 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	if config.SignatureHeader == "" {
		config.SignatureHeader = DefaultSignatureHeader
	}

	return &Server{
		config:    config,
		filter:    filter,
		submitter: submitter,
		logger:    logger,
	}
}

// Start starts the HTTP server (blocking).
func (s *Server) Start(ctx context.Context) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         s.config.Listen,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("webhook server starting", "listen", s.config.Listen)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("webhook server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("webhook server shutdown failed: %w", err)
		}
		return ctx.Err()
	case err := <-errCh:
		return fmt.Errorf("webhook server error: %w", err)
	}
}

// setupRoutes configures the HTTP router.
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/webhook", s.handleWebhook)
	r.Handle("/", web.Handler())

	return r
}

// loggingMiddleware logs HTTP requests (excludes payload content).
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	})
}

// handleHealth handles GET /health (no auth).
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// handleWebhook handles incoming webhook POST requests.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	limitedReader := io.LimitReader(r.Body, s.config.MaxBodySize+1)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to read request body")
		return
	}
	if int64(len(body)) > s.config.MaxBodySize {
		s.respondError(w, http.StatusRequestEntityTooLarge, "payload too large")
		return
	}

	// Delivery id plus body fingerprint tie request logs to the
	// processor logs emitted after the response is sent.
	deliveryID := uuid.NewString()
	fingerprint := blake3.Sum256(body)
	logger := s.logger.With(
		"delivery_id", deliveryID,
		"payload_hash", hex.EncodeToString(fingerprint[:8]),
	)

	if s.config.SigningSecret == "" {
		logger.Warn("no signing secret configured, skipping signature verification")
	} else {
		signature := r.Header.Get(s.config.SignatureHeader)
		if err := verifyHMACSignature(body, signature, s.config.SigningSecret); err != nil {
			logger.Warn("webhook signature verification failed")
			s.respondError(w, http.StatusUnauthorized, "invalid signature")
			return
		}
	}

	// Registration handshake: echo the challenge back.
	if challenge, ok := challengeToken(body); ok {
		logger.Info("answering webhook challenge")
		s.respondJSON(w, http.StatusOK, map[string]json.RawMessage{"challenge": challenge})
		return
	}

	if !validatePayload(body) {
		logger.Warn("webhook payload malformed")
		s.respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	evt, err := extractEvent(body)
	if err != nil {
		logger.Warn("event extraction failed", "error", err)
		s.respondError(w, http.StatusBadRequest, "invalid event")
		return
	}
	evt.DeliveryID = deliveryID

	if !s.filter.ShouldProcess(evt) {
		logger.Info("event ignored",
			"column_id", evt.ColumnID,
			"column_type", evt.ColumnType,
		)
		s.respondJSON(w, http.StatusOK, MessageResponse{Message: "ignored"})
		return
	}

	// The sender is acknowledged now; everything from here on is
	// fire-and-forget and only ever logged.
	if err := s.submitter.Submit(*evt); err != nil {
		logger.Error("failed to submit event for processing", "error", err)
	} else {
		logger.Info("event accepted",
			"board_id", evt.BoardID,
			"item_id", evt.ItemID,
			"column_id", evt.ColumnID,
		)
	}

	s.respondJSON(w, http.StatusOK, MessageResponse{Message: "received"})
}

// respondJSON sends a JSON response.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends a JSON error response.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
