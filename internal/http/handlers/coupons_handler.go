// Coupon HTTP handlers.
//
// The public validate endpoint is side-effect-free and safely repeatable:
// usage is only consumed by checkout after an order completes. Admin CRUD
// lives behind the Bearer gate.
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
)

// ValidateCouponRequest asks whether a code applies to an order subtotal.
type ValidateCouponRequest struct {
	Code       string `json:"code" binding:"required" example:"SAVE10"`
	OrderValue int64  `json:"orderValue" example:"90000"`
}

// CouponRequest is the admin create/update payload. Usage and status are
// derived server-side and cannot be supplied.
type CouponRequest struct {
	Code              string    `json:"code" binding:"required" example:"SAVE10"`
	Type              string    `json:"type" binding:"required" example:"percentage"`
	Value             int64     `json:"value" example:"10"`
	MinimumOrderValue int64     `json:"minimumOrderValue"`
	MaxUsage          int       `json:"maxUsage"`
	ValidFrom         time.Time `json:"validFrom"`
	ValidUntil        time.Time `json:"validUntil"`
}

// ValidateCoupon godoc
// @ID          validateCoupon
// @Summary     Validate a coupon code
// @Description Side-effect-free check; reports validity, the failure reason, and the discount in minor units.
// @Tags        Coupons
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.ValidateCouponRequest  true  "Code and order subtotal"
//
// @Success     200  {object}  containers.CouponResult
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /coupons/validate [post]
func (h *Handlers) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "code required")
		return
	}
	ok(c, http.StatusOK, h.deps.Coupons.Validate(req.Code, req.OrderValue))
}

// ListCoupons godoc
// @ID          listCoupons
// @Summary     List coupons
// @Description Returns all coupons, or only those whose derived status matches ?status=.
// @Tags        Admin/Coupons
// @Produce     json
// @Security    BearerAuth
//
// @Param       status  query  string  false "Derived status filter"  Enums(active, scheduled, expired)
//
// @Success     200  {array}  domain.Coupon
// @Router      /admin/coupons [get]
func (h *Handlers) ListCoupons(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		ok(c, http.StatusOK, h.deps.Coupons.ByStatus(status))
		return
	}
	ok(c, http.StatusOK, h.deps.Coupons.List())
}

// CreateCoupon godoc
// @ID          createCoupon
// @Summary     Create a coupon
// @Description Codes are unique case-insensitively; the status is derived from the validity window.
// @Tags        Admin/Coupons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CouponRequest  true  "Coupon payload"
//
// @Success     201  {object}  domain.Coupon
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Code already exists"
// @Router      /admin/coupons [post]
func (h *Handlers) CreateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid coupon payload")
		return
	}
	created, err := h.deps.Coupons.Add(c.Request.Context(), domain.Coupon{
		Code:              req.Code,
		Type:              req.Type,
		Value:             req.Value,
		MinimumOrderValue: req.MinimumOrderValue,
		MaxUsage:          req.MaxUsage,
		ValidFrom:         req.ValidFrom,
		ValidUntil:        req.ValidUntil,
	})
	if errors.Is(err, containers.ErrCodeTaken) {
		fail(c, http.StatusConflict, ErrCodeCodeTaken, "coupon code already exists")
		return
	}
	h.audit(c, "coupon.create", created.ID, created.Code)
	ok(c, http.StatusCreated, created)
}

// UpdateCoupon godoc
// @ID          updateCoupon
// @Summary     Update a coupon
// @Description Applies the payload and recomputes the derived status in the same mutation.
// @Tags        Admin/Coupons
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                  true  "Coupon ID"
// @Param       body  body  handlers.CouponRequest  true  "Coupon payload"
//
// @Success     200  {object}  domain.Coupon
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Coupon not found"
// @Router      /admin/coupons/{id} [put]
func (h *Handlers) UpdateCoupon(c *gin.Context) {
	var req CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid coupon payload")
		return
	}
	updated, err := h.deps.Coupons.Update(c.Request.Context(), c.Param("id"), func(cp *domain.Coupon) {
		cp.Type = req.Type
		cp.Value = req.Value
		cp.MinimumOrderValue = req.MinimumOrderValue
		cp.MaxUsage = req.MaxUsage
		cp.ValidFrom = req.ValidFrom
		cp.ValidUntil = req.ValidUntil
	})
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "coupon not found")
		return
	}
	h.audit(c, "coupon.update", updated.ID, updated.Code)
	ok(c, http.StatusOK, updated)
}

// DeleteCoupon godoc
// @ID          deleteCoupon
// @Summary     Delete a coupon
// @Tags        Admin/Coupons
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Coupon ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Coupon not found"
// @Router      /admin/coupons/{id} [delete]
func (h *Handlers) DeleteCoupon(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Coupons.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "coupon not found")
		return
	}
	h.audit(c, "coupon.delete", id, "")
	noContent(c)
}
