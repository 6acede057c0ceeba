package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"monument-backend/internal/config"
	"monument-backend/internal/dbadmin"
	"monument-backend/internal/infrastructure/cache"
	"monument-backend/internal/infrastructure/database"
	"monument-backend/internal/infrastructure/storage"
	"monument-backend/internal/shared/media"
	"monument-backend/pkg/jwt"
	"monument-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

type server struct {
	cfg  *config.Config
	db   *database.PostgresDB
	http *http.Server
}

// newServer wires infrastructure and the HTTP stack. Anything that
// fails here should stop the process before it starts serving.
func newServer(ctx context.Context, cfg *config.Config) (*server, error) {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redis, err := cache.NewRedisCache(ctx, cfg.Redis)
	if err != nil {
		db.Close()
		return nil, err
	}

	store, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		db.Close()
		return nil, err
	}

	deps := dependencies{
		cfg:      cfg,
		db:       db,
		cache:    redis,
		store:    store,
		resolver: media.NewResolver(cfg.Media),
		jwt:      jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry),
		dbadmin:  dbadmin.New(dbadmin.NewRunner(), cfg.Database, cfg.DBAdmin, db.Pool),
	}

	engine := newRouter(deps)

	return &server{
		cfg: cfg,
		db:  db,
		http: &http.Server{
			Addr:              ":" + cfg.App.Port,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func (s *server) run() error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", map[string]interface{}{"addr": s.http.Addr})
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.db.Close()
		return err
	case sig := <-quit:
		logger.Info("shutting down", map[string]interface{}{"signal": sig.String()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.db.Close()
	return err
}
