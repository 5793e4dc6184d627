package webapi

import (
	"net/http"

	"github.com/atelier-mireille/backend/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerHealthRoutes() {
	webserver.ApiGET("/health", getHealth)
}

func getHealth(c echo.Context) error {
	status := "ok"
	sqlDB, err := webserver.GetDB(c).DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request().Context())
	}
	if err != nil {
		status = "degraded"
		return c.JSON(http.StatusServiceUnavailable, map[string]interface{}{"status": status})
	}
	return ok(c, map[string]interface{}{"status": status})
}
