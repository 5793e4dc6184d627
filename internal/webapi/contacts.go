package webapi

import (
	"net/http"
	"strconv"

	"github.com/atelier-mireille/backend/internal/store"
	"github.com/atelier-mireille/backend/internal/webserver"
	"github.com/labstack/echo/v4"
)

func registerContactRoutes() {
	webserver.ApiPOST("/contact", createContactRequest)
	webserver.ApiGET("/contact-requests", listContactRequests)
	webserver.ApiDELETE("/contact-requests/:id", deleteContactRequest)
}

// createContactRequest accepts the storefront contact form: required text
// fields plus one optional image part.
func createContactRequest(c echo.Context) error {
	in := store.ContactInput{
		Prenom:      c.FormValue("prenom"),
		Nom:         c.FormValue("nom"),
		Telephone:   c.FormValue("telephone"),
		Description: c.FormValue("description"),
	}

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		path, err := env.Uploads.Save(fh)
		if err != nil {
			return httpError(c, err)
		}
		in.ImagePath = path
	}

	cr, err := env.Store.CreateContact(c.Request().Context(), in)
	if err != nil {
		if in.ImagePath != "" {
			env.Uploads.Remove(in.ImagePath)
		}
		return httpError(c, err)
	}
	return ok(c, map[string]interface{}{
		"id":      cr.ID,
		"message": "Contact request submitted",
	})
}

func listContactRequests(c echo.Context) error {
	rows, err := env.Store.ListContacts(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return ok(c, rows)
}

func deleteContactRequest(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid contact request ID", nil)
	}
	if err := env.Store.DeleteContact(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "message": "Contact request deleted"})
}
