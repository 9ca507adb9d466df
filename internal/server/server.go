package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forgesight/forgesight/dataset"
	"github.com/forgesight/forgesight/internal/cache"
	"github.com/forgesight/forgesight/internal/config"
	"github.com/forgesight/forgesight/internal/handlers"
	"github.com/forgesight/forgesight/internal/middleware"
)

const shutdownTimeout = 5 * time.Second

// Server is the dashboard API server.
type Server struct {
	cfg    config.Config
	ds     *dataset.Dataset
	cache  *cache.SnapshotCache
	logger *zap.Logger
}

// New assembles a server around an already-loaded dataset. The optional
// Redis cache is connected here; a connection failure disables caching with
// a warning rather than refusing to start.
func New(ctx context.Context, cfg config.Config, ds *dataset.Dataset, logger *zap.Logger) *Server {
	s := &Server{cfg: cfg, ds: ds, logger: logger}

	if cfg.Cache.Enabled {
		sc, err := cache.New(ctx, cfg.Cache.Addr, cfg.Cache.TTL, logger)
		if err != nil {
			logger.Warn("snapshot cache unavailable, serving without it", zap.Error(err))
		} else {
			s.cache = sc
		}
	}
	return s
}

// Router builds the gin router with all routes and middleware.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(s.logger))
	router.Use(middleware.CORS(s.cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "plants": s.ds.Len()})
	})

	var snapshotCache handlers.SnapshotCache
	if s.cache != nil {
		snapshotCache = s.cache
	}
	h := handlers.NewDashboardHandler(s.ds, snapshotCache, s.logger)

	api := router.Group("/api/v1")
	{
		api.GET("/options", h.Options)
		api.GET("/plants", h.Plants)
		api.GET("/metrics", h.Metrics)
		api.GET("/dashboard", h.Dashboard)
	}

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening",
			zap.String("addr", s.cfg.Addr),
			zap.Int("plants", s.ds.Len()),
			zap.Bool("cache", s.cache != nil),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	if s.cache != nil {
		if cerr := s.cache.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
