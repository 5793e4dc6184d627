package webapi

import (
	"net/http"
	"strconv"

	"github.com/atelier-mireille/backend/internal/store"
	"github.com/atelier-mireille/backend/internal/webserver"
	"github.com/labstack/echo/v4"
)

// maxOrderImages caps the number of attachments per submission.
const maxOrderImages = 10

func registerOrderRoutes() {
	webserver.ApiPOST("/custom-orders", createCustomOrder)
	webserver.ApiGET("/custom-orders", listCustomOrders)
	webserver.ApiDELETE("/custom-orders/:id", deleteCustomOrder)
}

// createCustomOrder accepts a multipart submission with text fields and up
// to ten image parts. Upload intake is all-or-nothing: any rejected file
// fails the whole submission before a row is written. Notification runs
// after the write as a best-effort post-commit hook; its outcome is not
// reported.
func createCustomOrder(c echo.Context) error {
	in := store.OrderInput{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		ProjectType: c.FormValue("projectType"),
		Budget:      c.FormValue("budget"),
		Description: c.FormValue("description"),
		Inspiration: c.FormValue("inspiration"),
		Deadline:    c.FormValue("deadline"),
	}

	var imagePaths []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		files := form.File["images"]
		if len(files) > maxOrderImages {
			return fail(c, http.StatusBadRequest, "TOO_MANY_IMAGES", "At most 10 images per order", len(files))
		}
		if len(files) > 0 {
			imagePaths, err = env.Uploads.SaveAll(files)
			if err != nil {
				return httpError(c, err)
			}
		}
	}
	in.Images = imagePaths

	o, err := env.Store.CreateOrder(c.Request().Context(), in)
	if err != nil {
		// the write failed; intake files would otherwise be orphaned
		for _, p := range imagePaths {
			env.Uploads.Remove(p)
		}
		return httpError(c, err)
	}

	go env.Notifier.OrderCreated(o, imagePaths)

	return ok(c, map[string]interface{}{
		"id":      o.ID,
		"message": "Custom order submitted",
	})
}

func listCustomOrders(c echo.Context) error {
	rows, err := env.Store.ListOrders(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return ok(c, rows)
}

func deleteCustomOrder(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	if err := env.Store.DeleteOrder(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "message": "Order deleted"})
}
