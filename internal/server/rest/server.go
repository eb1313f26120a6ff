// Package rest exposes the public HTTP API of the DataCleaner service.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/datacleaner-ai/datacleaner/internal/logging"
	"github.com/datacleaner-ai/datacleaner/internal/server/services"
)

type Server struct {
	addr      string
	jwtSecret []byte
	logger    logging.Logger
	users     *services.UserService
	images    *services.ImageService
	engine    *gin.Engine
}

func NewServer(addr, secretKey string, logger logging.Logger, users *services.UserService, images *services.ImageService) *Server {
	s := &Server{
		addr:      addr,
		jwtSecret: []byte(secretKey),
		logger:    logger,
		users:     users,
		images:    images,
	}
	s.engine = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	authGroup := r.Group("/auth")
	authGroup.POST("/register", s.handleRegister)
	authGroup.POST("/login", s.handleLogin)

	protected := r.Group("/")
	protected.Use(s.authRequired())

	protected.GET("/profile", s.handleProfile)

	imageGroup := protected.Group("/image")
	imageGroup.GET("/", s.handleListImages)
	imageGroup.POST("/", s.handleUpload)
	imageGroup.GET("/file/:name", s.handleGetFile)

	adminGroup := protected.Group("/admin")
	adminGroup.Use(adminRequired())
	adminGroup.GET("/users", s.handleListUsers)
	adminGroup.PUT("/users/:id/role", s.handleUpdateRole)

	return r
}

// Handler returns the root http.Handler, used directly by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info(shutdownCtx, "shutting down http server")
	return srv.Shutdown(shutdownCtx)
}
