package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/straja-ai/agegate/internal/analysis"
	"github.com/straja-ai/agegate/internal/config"
	"github.com/straja-ai/agegate/internal/lexical"
	"github.com/straja-ai/agegate/internal/logging"
)

const robotsTxt = "User-agent: *\nDisallow: /\n"

// Server is the agegate HTTP API.
type Server struct {
	mux      *http.ServeMux
	cfg      config.ServerConfig
	analyzer *analysis.Analyzer
	matcher  *lexical.Matcher
	log      zerolog.Logger
	metrics  *Metrics
	limiter  *rate.Limiter
	inFlight chan struct{}
	version  string
}

// New builds the server and registers its metrics recorder on the analyzer.
func New(cfg config.ServerConfig, a *analysis.Analyzer, m *lexical.Matcher, log zerolog.Logger, version string) *Server {
	mux := http.NewServeMux()
	s := &Server{
		mux:      mux,
		cfg:      cfg,
		analyzer: a,
		matcher:  m,
		log:      log,
		metrics:  NewMetrics(),
		version:  version,
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	}
	if cfg.MaxInFlightRequests > 0 {
		s.inFlight = make(chan struct{}, cfg.MaxInFlightRequests)
	}
	a.AddRecorder(s.metrics)

	// Routes
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/robots.txt", handleRobots)
	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/lexical", s.handleLexical)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.Handle("/metrics", s.metrics.Handler())

	return s
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(s.log, s.mux)
}

// Start serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Str("version", s.version).Msg("agegate running")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

func handleRobots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write([]byte(robotsTxt))
}

type lexicalRequest struct {
	Text string `json:"text"`
}

type statusResponse struct {
	Version   string         `json:"version"`
	Patterns  int            `json:"patterns"`
	Lexicon   string         `json:"lexicon"`
	Overrides map[string]int `json:"overrides"`
	RateLimit float64        `json:"rate_limit_rps"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r) {
		return
	}
	defer s.release()

	var in analysis.Input
	if !s.decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Metadata.VideoID) == "" {
		writeError(w, http.StatusBadRequest, "metadata.video_id is required", "invalid_request_error")
		return
	}
	if in.TopicCount < 0 {
		writeError(w, http.StatusBadRequest, "topic_count must not be negative", "invalid_request_error")
		return
	}

	rep := s.analyzer.Analyze(r.Context(), in)
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleLexical(w http.ResponseWriter, r *http.Request) {
	if !s.admit(w, r) {
		return
	}
	defer s.release()

	var req lexicalRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.matcher.Evaluate(req.Text))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "invalid_request_error")
		return
	}
	channels, videos, playlists := s.analyzer.Registry().Sizes()
	writeJSON(w, http.StatusOK, statusResponse{
		Version:  s.version,
		Patterns: s.matcher.PatternCount(),
		Lexicon:  s.matcher.LexiconName(),
		Overrides: map[string]int{
			"channels":  channels,
			"videos":    videos,
			"playlists": playlists,
		},
		RateLimit: s.cfg.RateLimitRPS,
	})
}

// admit applies method, rate and concurrency limits. A true result must be
// paired with release.
func (s *Server) admit(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "invalid_request_error")
		return false
	}
	if s.limiter != nil && !s.limiter.Allow() {
		s.metrics.RejectedTotal.WithLabelValues("rate_limited").Inc()
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded", "rate_limit_error")
		return false
	}
	if s.inFlight != nil {
		select {
		case s.inFlight <- struct{}{}:
		default:
			s.metrics.RejectedTotal.WithLabelValues("overloaded").Inc()
			writeError(w, http.StatusServiceUnavailable, "server busy", "overloaded_error")
			return false
		}
	}
	s.metrics.RequestsInFlight.Inc()
	return true
}

func (s *Server) release() {
	s.metrics.RequestsInFlight.Dec()
	if s.inFlight != nil {
		<-s.inFlight
	}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := r.Body
	if s.cfg.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.metrics.RejectedTotal.WithLabelValues("too_large").Inc()
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "invalid_request_error")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid JSON body", "invalid_request_error")
		return false
	}
	return true
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// writeError writes a JSON error envelope.
func writeError(w http.ResponseWriter, status int, message, typ string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Message: message, Type: typ}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
