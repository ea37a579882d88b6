package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"clipscout/internal/api"
	"clipscout/internal/config"
	"clipscout/internal/logging"
)

type apiServer struct {
	bind    string
	logger  *slog.Logger
	daemon  *Daemon
	service *api.CandidateService
	router  *gin.Engine

	mu       sync.Mutex
	listener net.Listener
	server   *http.Server
}

func newAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) *apiServer {
	gin.SetMode(gin.ReleaseMode)
	srv := &apiServer{
		bind:    strings.TrimSpace(cfg.Paths.APIBind),
		logger:  logging.NewComponentLogger(logger, "api-server"),
		daemon:  d,
		service: d.service,
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), requestLogger(srv.logger))

	prefix := cfg.Assets.URLPrefix
	router.Static(prefix+"/videos", cfg.VideosDir())
	router.Static(prefix+"/icons", cfg.IconsDir())

	group := router.Group("/api", authMiddleware(cfg.Paths.APIToken))
	group.GET("/status", srv.handleStatus)
	group.GET("/candidates", srv.handleList)
	group.POST("/candidates", srv.handleCreate)
	group.POST("/candidates/batch-delete", srv.handleBatchDelete)
	group.GET("/candidates/:id", srv.handleGet)
	group.PATCH("/candidates/:id", srv.handleUpdate)
	group.DELETE("/candidates/:id", srv.handleDelete)
	group.GET("/stats", srv.handleStats)

	srv.router = router
	srv.server = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      writeTimeout(cfg),
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// writeTimeout leaves room for the three fetch tool invocations a submission
// may make. A zero download timeout disables the limit.
func writeTimeout(cfg *config.Config) time.Duration {
	download := cfg.DownloadTimeout()
	if download <= 0 {
		return 0
	}
	return 3*download + 30*time.Second
}

func (s *apiServer) start(ctx context.Context) error {
	if s.bind == "" {
		return errors.New("api bind address not configured")
	}
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) writeError(c *gin.Context, err error) {
	status := api.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logging.ErrorWithContext(logging.WithContext(c.Request.Context(), s.logger), "request failed", "api_request_failed",
			logging.Error(err),
			logging.String("path", c.FullPath()),
		)
	}
	c.JSON(status, api.NewErrorResponse(err))
}
