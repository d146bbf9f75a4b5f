package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// CatalogHandler serves product listings.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List returns every product, optionally filtered by a title substring.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        q    query     string  false  "Case-insensitive title filter"
// @Success      200  {array}   domain.Product
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	return h.list(c, c.QueryParam("q"))
}

// Search is the form-post variant of List.
//
// @Summary      Search products by title
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      searchRequest  true  "Search query"
// @Success      200   {array}   domain.Product
// @Router       /products/search [post]
func (h *CatalogHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.list(c, req.Query)
}

func (h *CatalogHandler) list(c echo.Context, filter string) error {
	products, err := h.catalog.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get returns a product with its seller name and reviews.
//
// @Summary      Product detail
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  domain.ProductDetail
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.catalog.GetProduct(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Create posts a new listing owned by the caller.
//
// @Summary      Create listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      listingRequest  true  "Listing"
// @Success      201   {object}  domain.Product
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /products [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req listingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.CreateListing(c.Request().Context(), actorFrom(c), toListingInput(req))
	if err != nil {
		return err
	}
	metrics.ListingsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, product)
}

// Update overwrites the editable fields of a listing.
//
// @Summary      Edit listing
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Product ID"
// @Param        body  body      listingRequest  true  "Listing"
// @Success      200   {object}  domain.Product
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req listingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	product, err := h.catalog.EditListing(c.Request().Context(), actorFrom(c), id, toListingInput(req))
	if err != nil {
		return err
	}
	metrics.ListingsTotal.WithLabelValues("edited").Inc()
	return c.JSON(http.StatusOK, product)
}

// Delete removes a listing and its reviews.
//
// @Summary      Delete listing
// @Tags         products
// @Security     BearerAuth
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.catalog.DeleteListing(c.Request().Context(), actorFrom(c), id); err != nil {
		return err
	}
	metrics.ListingsTotal.WithLabelValues("deleted").Inc()
	return c.NoContent(http.StatusNoContent)
}
