// Package webserver owns the echo instance, its middleware and route
// registration helpers. Handlers live in internal/webapi.
package webserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/atelier-mireille/backend/internal/app"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ContextDBKey is the echo context key under which the request database
// handle is injected.
const ContextDBKey = "app_db"

var (
	server *echo.Echo
	appCtx app.AppContext
)

// Init builds the echo instance with the service middleware stack and
// static upload serving. Must be called before any route registration.
func Init(a app.AppContext) {
	appCtx = a
	server = echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.CORS())
	// the ceiling accommodates a full order submission: up to ten image
	// parts of 10 MiB each plus form overhead
	server.Use(middleware.BodyLimit("110M"))
	server.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextDBKey, a.DB())
			return next(c)
		}
	})

	// uploaded images are retrievable by path under the public prefix
	server.Static("/uploads", a.Config().Web.UploadDir)
}

// Instance returns the underlying echo server (used by handler tests).
func Instance() *echo.Echo {
	return server
}

// GetDB returns the request-scoped database handle injected by Init's
// middleware.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(ContextDBKey).(*gorm.DB)
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.DELETE(path, h)
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func Start() error {
	addr := fmt.Sprintf("%s:%d", appCtx.Config().Web.Host, appCtx.Config().Web.Port)
	zap.L().Info("http server listening", zap.String("addr", addr))
	if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
