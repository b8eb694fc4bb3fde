// Checkout HTTP handlers.
//
// POST /checkout is the one unsafe operation clients retry aggressively, so it
// honors the Idempotency-Key header: a retried request whose (customer, key)
// tuple already completed returns the persisted last order instead of placing
// a second one. The validator middleware flags such replays; this handler
// stays in control of serving them.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/checkout"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// CheckoutRequest is the JSON payload for placing an order.
type CheckoutRequest struct {
	ShippingAddress domain.ShippingAddress `json:"shippingAddress" binding:"required"`
	CouponCode      string                 `json:"couponCode"`
}

// PlaceOrder godoc
// @ID          placeOrder
// @Summary     Place an order
// @Description Validates the shipping form (reporting every failing field at once), applies an optional coupon, synthesizes the order, clears the cart, and persists the order as the customer's last order. Safe to retry with an Idempotency-Key header.
// @Tags        Checkout
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID    header  string                    false "Customer identity"
// @Param       Idempotency-Key  header  string                    false "Retry-safe key"  example(chk-8c1f-0042)
// @Param       body             body    handlers.CheckoutRequest  true  "Checkout payload"
//
// @Success     200  {object}  domain.Order  "Replayed previous order"
// @Success     201  {object}  domain.Order
// @Failure     400  {object}  handlers.ErrorResponse       "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse       "Empty cart"
// @Failure     422  {object}  handlers.FieldErrorResponse  "Validation failed or coupon rejected"
// @Failure     500  {object}  handlers.ErrorResponse       "Internal error"
// @Router      /checkout [post]
func (h *Handlers) PlaceOrder(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := middleware.CustomerFrom(c)

	// Serve a detected replay from the persisted last order. Falls through to
	// a fresh placement if the order has meanwhile disappeared.
	if middleware.IsReplay(c) {
		if order, err := h.deps.Checkout.LastOrder(ctx, customerID); err == nil {
			ok(c, http.StatusOK, order)
			return
		}
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid checkout payload")
		return
	}

	order, err := h.deps.Checkout.PlaceOrder(ctx, customerID, req.ShippingAddress, req.CouponCode)
	if err != nil {
		var fieldErrs checkout.FieldErrors
		var couponErr *checkout.CouponError
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			fail(c, http.StatusConflict, ErrCodeEmptyCart, "cart is empty")
		case errors.As(err, &fieldErrs):
			failFields(c, fieldErrs.Error(), fieldErrs)
		case errors.As(err, &couponErr):
			fail(c, http.StatusUnprocessableEntity, ErrCodeCouponRejected, couponErr.Reason)
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "checkout failed")
		}
		return
	}

	// Record the idempotency tuple so a retried request replays this order.
	if key, present := middleware.GetIdempotencyKey(c); present && h.deps.DB != nil {
		_, err := store.CreateIdempotency(ctx, h.deps.DB, customerID, key, order.ID, http.StatusCreated, h.deps.IdemTTL)
		if err != nil && !errors.Is(err, store.ErrDuplicate) {
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record not saved")
		}
	}

	middleware.ObserveOrder(order.Total, order.CouponCode != "")
	ok(c, http.StatusCreated, order)
}

// LastOrder godoc
// @ID          lastOrder
// @Summary     Get the most recent order
// @Description Returns the customer's single retained order (not a history).
// @Tags        Checkout
// @Produce     json
//
// @Param       X-Customer-ID  header  string  false "Customer identity"
//
// @Success     200  {object}  domain.Order
// @Failure     404  {object}  handlers.ErrorResponse  "No order on record"
// @Router      /orders/last [get]
func (h *Handlers) LastOrder(c *gin.Context) {
	order, err := h.deps.Checkout.LastOrder(c.Request.Context(), middleware.CustomerFrom(c))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "no order on record")
		return
	}
	ok(c, http.StatusOK, order)
}
