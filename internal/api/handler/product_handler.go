package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nskopt/catalog-api/internal/api/metrics"
	"github.com/nskopt/catalog-api/internal/api/middleware"
	"github.com/nskopt/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog products.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// callerIsManager reports whether the request identity may see the admin
// projection. Anonymous callers get the user view.
func callerIsManager(c echo.Context) bool {
	identity, ok := middleware.IdentityFrom(c)
	return ok && identity.IsManagerOrAdmin()
}

// List handles GET /api/products.
//
// @Summary      List all products
// @Tags         products
// @Produce      json
// @Success      200  {array}  productUserResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(products, callerIsManager(c)))
}

// ListByCategory handles GET /api/categories/:id/products.
//
// @Summary      List the products of a category
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category ID"
// @Success      200  {array}   productUserResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/categories/{id}/products [get]
func (h *ProductHandler) ListByCategory(c echo.Context) error {
	products, err := h.service.ListByCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductListResponse(products, callerIsManager(c)))
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product by ID
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {object}  productUserResponse
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*product, callerIsManager(c)))
}

// Create handles POST /api/products (manager/admin only).
//
// @Summary      Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProductRequest  true  "Product details"
// @Success      201   {object}  productAdminResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Create(c.Request().Context(), toProductInput(req))
	if err != nil {
		return err
	}

	metrics.ProductsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toProductAdminResponse(*product))
}

// Update handles PUT /api/products/:id (manager/admin only).
//
// @Summary      Update a product by ID
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Product details"
// @Success      200   {object}  productAdminResponse
// @Failure      404   {object}  map[string]any
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), toProductInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductAdminResponse(*product))
}

// Delete handles DELETE /api/products/:id (manager/admin only).
//
// @Summary      Delete a product by ID
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product ID"
// @Success      204
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UpdateCategories handles PUT /api/products/:id/categories (manager/admin only).
//
// @Summary      Replace the categories of a product
// @Tags         products
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "Product ID"
// @Param        body  body  updateIDsRequest  true  "Category IDs"
// @Success      200
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id}/categories [put]
func (h *ProductHandler) UpdateCategories(c echo.Context) error {
	var req updateIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateCategories(c.Request().Context(), c.Param("id"), req.IDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// UpdateImages handles PUT /api/products/:id/images (manager/admin only).
//
// @Summary      Replace the images of a product
// @Tags         products
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "Product ID"
// @Param        body  body  updateIDsRequest  true  "Image IDs"
// @Success      200
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id}/images [put]
func (h *ProductHandler) UpdateImages(c echo.Context) error {
	var req updateIDsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateImages(c.Request().Context(), c.Param("id"), req.IDs); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// ImageIDs handles GET /api/products/:id/images.
//
// @Summary      List the image IDs of a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product ID"
// @Success      200  {array}   string
// @Failure      404  {object}  map[string]any
// @Router       /api/products/{id}/images [get]
func (h *ProductHandler) ImageIDs(c echo.Context) error {
	ids, err := h.service.ImageIDs(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(ids))
}
