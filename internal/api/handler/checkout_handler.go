package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/api/metrics"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/ports"
)

// IdempotencyKeyHeader lets a client retry checkout creation safely.
const IdempotencyKeyHeader = "Idempotency-Key"

type CheckoutHandler struct {
	checkout ports.CheckoutService
}

func NewCheckoutHandler(checkout ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// Create starts a hosted checkout for one unit of a product. With
// ?redirect=true the buyer is sent straight to the processor with a 303.
//
// @Summary      Create checkout session
// @Tags         checkout
// @Produce      json
// @Param        product_id       path      int     true   "Product ID"
// @Param        Idempotency-Key  header    string  false  "Client retry key"
// @Param        redirect         query     bool    false  "Redirect to the hosted checkout"
// @Success      201  {object}  ports.CheckoutResult
// @Success      303
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /checkout/{product_id} [post]
func (h *CheckoutHandler) Create(c echo.Context) error {
	productID, err := pathID(c, "product_id")
	if err != nil {
		return err
	}

	key := c.Request().Header.Get(IdempotencyKeyHeader)
	result, err := h.checkout.CreateSession(c.Request().Context(), actorFrom(c), productID, key)
	if err != nil {
		metrics.CheckoutSessionsTotal.WithLabelValues(checkoutOutcome(err)).Inc()
		return err
	}
	if result.Replayed {
		metrics.CheckoutSessionsTotal.WithLabelValues("replayed").Inc()
	} else {
		metrics.CheckoutSessionsTotal.WithLabelValues("created").Inc()
	}

	if redirect, _ := strconv.ParseBool(c.QueryParam("redirect")); redirect {
		return c.Redirect(http.StatusSeeOther, result.URL)
	}
	return c.JSON(http.StatusCreated, result)
}

// Success is where the processor sends the buyer after paying. The payment
// is not confirmed by this visit.
//
// @Summary      Checkout return
// @Tags         checkout
// @Produce      json
// @Param        session_id  query     string  true  "Checkout session ID"
// @Success      200  {object}  ports.CheckoutReturn
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /checkout/success [get]
func (h *CheckoutHandler) Success(c echo.Context) error {
	result, err := h.checkout.ConfirmReturn(c.Request().Context(), c.QueryParam("session_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// Cancel is where the processor sends a buyer who abandoned checkout.
//
// @Summary      Checkout cancelled
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /checkout/cancel [get]
func (h *CheckoutHandler) Cancel(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "checkout cancelled"})
}

func checkoutOutcome(err error) string {
	var pe *domain.PayoutProviderError
	switch {
	case errors.Is(err, domain.ErrSellerNotPayable):
		return "not_payable"
	case errors.As(err, &pe):
		return "provider_error"
	default:
		return "error"
	}
}
