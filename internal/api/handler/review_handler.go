package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

type ReviewHandler struct {
	reviews ports.ReviewService
}

func NewReviewHandler(reviews ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Add posts a review on a product.
//
// @Summary      Add review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Product ID"
// @Param        body  body      reviewRequest  true  "Review"
// @Success      201   {object}  domain.Review
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id}/reviews [post]
func (h *ReviewHandler) Add(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.AddReview(c.Request().Context(), actorFrom(c), productID, req.Text)
	if err != nil {
		return err
	}
	metrics.ReviewsTotal.Inc()
	return c.JSON(http.StatusCreated, review)
}

// Delete removes a review. The product is left untouched.
//
// @Summary      Delete review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id   path  int  true  "Review ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.reviews.DeleteReview(c.Request().Context(), actorFrom(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
