package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	apiauth "github.com/psommers/rolegate/internal/api/auth"
	"github.com/psommers/rolegate/internal/api/handler"
	"github.com/psommers/rolegate/internal/auth"
	"github.com/psommers/rolegate/internal/config"
	"github.com/psommers/rolegate/internal/session"
	"github.com/psommers/rolegate/internal/static"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	store     auth.CredentialStore
}

// New creates the HTTP server and registers all routes.
func New(cfg *config.Config, store auth.CredentialStore, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("credential store is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		store:     store,
	}
	s.ginEngine.Use(gin.Recovery(), requestLogger())
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) setupSession() {
	s.ginEngine.Use(session.Middleware(s.cfg))
}

func (s *Server) setupRoutes() error {
	assets, err := static.Assets()
	if err != nil {
		return err
	}
	s.ginEngine.StaticFS("/static", http.FS(assets))

	s.setupSession()

	h := handler.New(s.store)

	s.ginEngine.GET(handler.PathIndex, h.Index)
	s.ginEngine.GET(handler.PathLogin, h.LoginForm)
	s.ginEngine.POST(handler.PathLogin, h.Login)
	s.ginEngine.GET(handler.PathLogout, h.Logout)

	protected := s.ginEngine.Group("/")
	protected.Use(apiauth.RequireAuth(handler.PathLogin))
	protected.GET(handler.PathDashboard, h.Dashboard)

	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	log.Info("HTTP server stopped")
	return nil
}
