// Review HTTP handlers.
//
// Submissions land in a pending moderation queue; the storefront only ever
// sees approved reviews. Moderation decisions are overridable.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
)

// CreateReviewRequest submits a product review for moderation.
type CreateReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Author    string `json:"author" binding:"required" example:"Dana M."`
	Rating    int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	Title     string `json:"title"`
	Body      string `json:"body" binding:"required"`
}

// CreateReview godoc
// @ID          createReview
// @Summary     Submit a product review
// @Description The review enters the pending moderation queue and is not visible until approved.
// @Tags        Reviews
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID  header  string                        false "Customer identity"
// @Param       body           body    handlers.CreateReviewRequest  true  "Review payload"
//
// @Success     201  {object}  domain.Review
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /reviews [post]
func (h *Handlers) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "productId, author, rating (1-5) and body required")
		return
	}
	created := h.deps.Reviews.Add(c.Request.Context(), domain.Review{
		ProductID:  req.ProductID,
		CustomerID: middleware.CustomerFrom(c),
		Author:     req.Author,
		Rating:     req.Rating,
		Title:      req.Title,
		Body:       req.Body,
	})
	ok(c, http.StatusCreated, created)
}

// ListProductReviews godoc
// @ID          listProductReviews
// @Summary     List a product's published reviews
// @Tags        Reviews
// @Produce     json
//
// @Param       slug  path  string  true  "Product slug"
//
// @Success     200  {array}   domain.Review
// @Failure     404  {object}  handlers.ErrorResponse  "Product not found"
// @Router      /products/{slug}/reviews [get]
func (h *Handlers) ListProductReviews(c *gin.Context) {
	prod, err := h.deps.Products.BySlug(c.Param("slug"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "product not found")
		return
	}
	ok(c, http.StatusOK, h.deps.Reviews.ApprovedForProduct(prod.ID))
}

// ListReviews godoc
// @ID          listReviews
// @Summary     List reviews
// @Tags        Admin/Reviews
// @Produce     json
// @Security    BearerAuth
//
// @Param       status  query  string  false "Moderation status filter"  Enums(pending, approved, rejected)
//
// @Success     200  {array}  domain.Review
// @Router      /admin/reviews [get]
func (h *Handlers) ListReviews(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		ok(c, http.StatusOK, h.deps.Reviews.ByStatus(status))
		return
	}
	ok(c, http.StatusOK, h.deps.Reviews.List())
}

// ApproveReview godoc
// @ID          approveReview
// @Summary     Publish a review
// @Tags        Admin/Reviews
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Review ID"
//
// @Success     200  {object}  domain.Review
// @Failure     404  {object}  handlers.ErrorResponse  "Review not found"
// @Router      /admin/reviews/{id}/approve [post]
func (h *Handlers) ApproveReview(c *gin.Context) {
	updated, err := h.deps.Reviews.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "review not found")
		return
	}
	h.audit(c, "review.approve", updated.ID, "")
	ok(c, http.StatusOK, updated)
}

// RejectReview godoc
// @ID          rejectReview
// @Summary     Hide a review
// @Tags        Admin/Reviews
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Review ID"
//
// @Success     200  {object}  domain.Review
// @Failure     404  {object}  handlers.ErrorResponse  "Review not found"
// @Router      /admin/reviews/{id}/reject [post]
func (h *Handlers) RejectReview(c *gin.Context) {
	updated, err := h.deps.Reviews.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "review not found")
		return
	}
	h.audit(c, "review.reject", updated.ID, "")
	ok(c, http.StatusOK, updated)
}

// DeleteReview godoc
// @ID          deleteReview
// @Summary     Delete a review
// @Tags        Admin/Reviews
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Review ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Review not found"
// @Router      /admin/reviews/{id} [delete]
func (h *Handlers) DeleteReview(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Reviews.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "review not found")
		return
	}
	h.audit(c, "review.delete", id, "")
	noContent(c)
}
