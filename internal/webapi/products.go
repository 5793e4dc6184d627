package webapi

import (
	"net/http"
	"strconv"

	"github.com/atelier-mireille/backend/internal/store"
	"github.com/atelier-mireille/backend/internal/webserver"
	"github.com/labstack/echo/v4"
)

type productPayload struct {
	Name        string   `json:"name"`
	Price       flexText `json:"price"`
	Images      []string `json:"images"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Stock       *int     `json:"stock"`
}

func (p *productPayload) toInput() store.ProductInput {
	return store.ProductInput{
		Name:        p.Name,
		Price:       string(p.Price),
		Category:    p.Category,
		Description: p.Description,
		Stock:       p.Stock,
		Images:      p.Images,
	}
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

func listProducts(c echo.Context) error {
	rows, err := env.Store.ListProducts(c.Request().Context())
	if err != nil {
		return httpError(c, err)
	}
	return ok(c, rows)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := env.Store.CreateProduct(c.Request().Context(), payload.toInput())
	if err != nil {
		return httpError(c, err)
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	p, err := env.Store.UpdateProduct(c.Request().Context(), id, payload.toInput())
	if err != nil {
		return httpError(c, err)
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := env.Store.DeleteProduct(c.Request().Context(), id); err != nil {
		return httpError(c, err)
	}
	return ok(c, map[string]interface{}{"id": id, "message": "Product deleted"})
}
