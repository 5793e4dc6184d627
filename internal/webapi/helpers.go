// Package webapi maps the HTTP surface onto the record store, upload
// intake and notification dispatcher.
package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/atelier-mireille/backend/internal/domain"
	"github.com/atelier-mireille/backend/internal/notify"
	"github.com/atelier-mireille/backend/internal/store"
	"github.com/atelier-mireille/backend/internal/uploads"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Env bundles the collaborators the handlers need. It is wired once at
// process start by Register.
type Env struct {
	Store    *store.Store
	Uploads  *uploads.Store
	Notifier *notify.Dispatcher
}

var env *Env

// Register wires handler dependencies and registers every route.
func Register(e *Env) {
	env = e
	registerProductRoutes()
	registerOrderRoutes()
	registerContactRoutes()
	registerHealthRoutes()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code string, message string, detail interface{}) error {
	if detail != nil {
		zap.L().Warn("request failed",
			zap.String("path", c.Path()),
			zap.String("code", code),
			zap.Any("detail", detail))
	}
	return c.JSON(status, map[string]interface{}{
		"error": message,
		"code":  code,
	})
}

// httpError translates a domain error into the response contract: 400 for
// validation and upload rejections, 404 for missing rows, 500 with a
// generic message otherwise. Storage internals are logged, never echoed.
func httpError(c echo.Context, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return fail(c, http.StatusBadRequest, "MISSING_FIELDS", verr.Error(), nil)
	}
	var mterr *domain.MediaTypeError
	if errors.As(err, &mterr) {
		return fail(c, http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", "Only image files are allowed", mterr.ContentType)
	}
	var fterr *domain.FileTooLargeError
	if errors.As(err, &fterr) {
		return fail(c, http.StatusBadRequest, "FILE_TOO_LARGE", "Image exceeds the 10 MiB limit", fterr.Size)
	}
	var nferr *domain.NotFoundError
	if errors.As(err, &nferr) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", nferr.Error(), nil)
	}
	zap.L().Error("storage failure", zap.String("path", c.Path()), zap.Error(err))
	return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Database error", nil)
}

// flexText accepts either a JSON string or a bare number, preserving the
// value as provided. The catalog stores prices this way.
type flexText string

func (f *flexText) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*f = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexText(v)
		return nil
	}
	*f = flexText(s)
	return nil
}

func (f flexText) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}
