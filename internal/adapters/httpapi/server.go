// Package httpapi exposes the analyzer over HTTP.
//
// Routes:
//
//	POST   /api/auth/signup                → register a new account
//	POST   /api/auth/login                 → exchange credentials for a token
//	GET    /api/auth/me                    → current user's profile
//	GET    /api/auth/verify                → validate the presented token
//	POST   /api/auth/logout                → stateless acknowledgement
//	POST   /api/analysis/analyze           → analyze a job offer (JSON or multipart)
//	GET    /api/analysis/result/{id}       → fetch a stored analysis
//	GET    /api/dashboard/analyses         → list the user's analyses (limit/skip)
//	DELETE /api/dashboard/analyses/{id}    → delete one analysis
//	GET    /api/dashboard/stats            → per-user summary statistics
//	GET    /health                         → liveness probe
//	GET    /metrics                        → Prometheus metrics
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/mikey/job-scam-detector/internal/adapters/store"
	"github.com/mikey/job-scam-detector/internal/auth"
	"github.com/mikey/job-scam-detector/internal/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end of the analyzer service.
type Server struct {
	service       *core.AnalyzerService
	store         store.AnalysisUserStore
	tokens        *auth.TokenIssuer
	logger        *zap.Logger
	listenAddr    string
	minTextLength int
	readTimeout   time.Duration
	writeTimeout  time.Duration
	httpServer    *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	service *core.AnalyzerService,
	st store.AnalysisUserStore,
	tokens *auth.TokenIssuer,
	logger *zap.Logger,
	listenAddr string,
	minTextLength int,
	readTimeout time.Duration,
	writeTimeout time.Duration,
) *Server {
	return &Server{
		service:       service,
		store:         st,
		tokens:        tokens,
		logger:        logger,
		listenAddr:    listenAddr,
		minTextLength: minTextLength,
		readTimeout:   readTimeout,
		writeTimeout:  writeTimeout,
	}
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/auth/signup", s.handleSignup)
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/auth/me", s.requireAuth(s.handleMe))
	mux.HandleFunc("/api/auth/verify", s.requireAuth(s.handleVerify))
	mux.HandleFunc("/api/auth/logout", s.handleLogout)

	mux.HandleFunc("/api/analysis/analyze", s.requireAuth(s.handleAnalyze))
	mux.HandleFunc("/api/analysis/result/", s.requireAuth(s.handleGetResult))

	mux.HandleFunc("/api/dashboard/analyses", s.requireAuth(s.handleListAnalyses))
	mux.HandleFunc("/api/dashboard/analyses/", s.requireAuth(s.handleDeleteAnalysis))
	mux.HandleFunc("/api/dashboard/stats", s.requireAuth(s.handleStats))

	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())

	return mux
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.routes(),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.logger.Info("HTTP server starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil {
			if err != http.ErrServerClosed {
				s.logger.Error("HTTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server, draining in-flight requests.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
