// Package webapi is the HTTP route layer: thin echo adapters that validate
// payloads, call the store facade and map results to JSON.
package webapi

import (
	"context"
	"fmt"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/vroomify/vroom/internal/app"
	"github.com/vroomify/vroom/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	app   *app.Application
	store *store.Store
	echo  *echo.Echo
}

func NewServer(application *app.Application) *Server {
	s := &Server{
		app:   application,
		store: application.Store(),
		echo:  echo.New(),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true

	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.CORS())
	s.echo.Use(requestLogger())

	s.initRoutes()
	return s
}

// Echo exposes the underlying engine for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) initRoutes() {
	api := s.echo.Group("/api/v1")

	// public endpoints: browsing needs no identity
	s.registerAuthRoutes(api)
	s.registerPublicRoutes(api)

	// authenticated endpoints: JWT resolves the acting user
	secret := s.app.Config().Web.JwtSecret
	auth := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		ErrorHandler: func(c echo.Context, err error) error {
			return fail(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid token", nil)
		},
	}))
	s.registerUserRoutes(auth)
	s.registerProductRoutes(auth)
	s.registerVroomRoutes(auth)
	s.registerSocialRoutes(auth)
	s.registerCartRoutes(auth)
	s.registerOrderRoutes(auth)
	s.registerMessageRoutes(auth)
	s.registerAdminRoutes(auth)
}

func (s *Server) Start() error {
	cfg := s.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// requestLogger logs each request through the zap globals.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				zap.L().Warn("request",
					zap.String("method", v.Method),
					zap.String("uri", v.URI),
					zap.Int("status", v.Status),
					zap.Error(v.Error))
				return nil
			}
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}
