// Return-request HTTP handlers.
//
// Customers file requests; admins drive the lifecycle:
// pending -> approved -> item_received -> refunded, with rejected as the other
// terminal branch. Illegal edges surface as 409 invalid_transition.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
)

// CreateReturnRequest files a return for an order item.
type CreateReturnRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	ProductID string `json:"productId" binding:"required"`
	Reason    string `json:"reason" binding:"required" example:"wrong size"`
}

// ReturnDecisionRequest carries optional admin notes for approve/reject.
type ReturnDecisionRequest struct {
	Notes string `json:"notes"`
}

// RefundRequest optionally overrides the refund amount in minor units.
type RefundRequest struct {
	Amount int64 `json:"amount" example:"12900"`
}

// CreateReturn godoc
// @ID          createReturn
// @Summary     File a return request
// @Tags        Returns
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID  header  string                        false "Customer identity"
// @Param       body           body    handlers.CreateReturnRequest  true  "Return payload"
//
// @Success     201  {object}  domain.ReturnRequest
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /returns [post]
func (h *Handlers) CreateReturn(c *gin.Context) {
	var req CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "orderId, productId and reason required")
		return
	}
	created := h.deps.Returns.Add(c.Request.Context(), domain.ReturnRequest{
		OrderID:    req.OrderID,
		CustomerID: middleware.CustomerFrom(c),
		ProductID:  req.ProductID,
		Reason:     req.Reason,
	})
	ok(c, http.StatusCreated, created)
}

// ListMyReturns godoc
// @ID          listMyReturns
// @Summary     List the caller's return requests
// @Tags        Returns
// @Produce     json
//
// @Param       X-Customer-ID  header  string  false "Customer identity"
//
// @Success     200  {array}  domain.ReturnRequest
// @Router      /returns [get]
func (h *Handlers) ListMyReturns(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Returns.ByCustomer(middleware.CustomerFrom(c)))
}

// ListReturns godoc
// @ID          listReturns
// @Summary     List return requests
// @Tags        Admin/Returns
// @Produce     json
// @Security    BearerAuth
//
// @Param       status  query  string  false "Status filter"  Enums(pending, approved, rejected, item_received, refunded)
//
// @Success     200  {array}  domain.ReturnRequest
// @Router      /admin/returns [get]
func (h *Handlers) ListReturns(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		ok(c, http.StatusOK, h.deps.Returns.ByStatus(status))
		return
	}
	ok(c, http.StatusOK, h.deps.Returns.List())
}

// returnTransition maps the container call's outcome onto the shared response
// conventions for all four lifecycle endpoints.
func (h *Handlers) returnTransition(c *gin.Context, action string, fn func() (domain.ReturnRequest, error)) {
	updated, err := fn()
	switch {
	case errors.Is(err, containers.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "return request not found")
		return
	case errors.Is(err, containers.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeInvalidTransition, "status does not allow this transition")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "transition failed")
		return
	}
	h.audit(c, action, updated.ID, updated.Status)
	ok(c, http.StatusOK, updated)
}

// ApproveReturn godoc
// @ID          approveReturn
// @Summary     Approve a pending return
// @Description Stamps the decision time once; later transitions never overwrite it.
// @Tags        Admin/Returns
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                          true  "Return ID"
// @Param       body  body  handlers.ReturnDecisionRequest  false "Optional notes"
//
// @Success     200  {object}  domain.ReturnRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Return not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Invalid transition"
// @Router      /admin/returns/{id}/approve [post]
func (h *Handlers) ApproveReturn(c *gin.Context) {
	var req ReturnDecisionRequest
	_ = c.ShouldBindJSON(&req) // body optional
	h.returnTransition(c, "return.approve", func() (domain.ReturnRequest, error) {
		return h.deps.Returns.Approve(c.Request.Context(), c.Param("id"), req.Notes)
	})
}

// RejectReturn godoc
// @ID          rejectReturn
// @Summary     Reject a pending return
// @Tags        Admin/Returns
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                          true  "Return ID"
// @Param       body  body  handlers.ReturnDecisionRequest  false "Optional notes"
//
// @Success     200  {object}  domain.ReturnRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Return not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Invalid transition"
// @Router      /admin/returns/{id}/reject [post]
func (h *Handlers) RejectReturn(c *gin.Context) {
	var req ReturnDecisionRequest
	_ = c.ShouldBindJSON(&req)
	h.returnTransition(c, "return.reject", func() (domain.ReturnRequest, error) {
		return h.deps.Returns.Reject(c.Request.Context(), c.Param("id"), req.Notes)
	})
}

// ReceiveReturn godoc
// @ID          receiveReturn
// @Summary     Mark the returned goods as received
// @Tags        Admin/Returns
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Return ID"
//
// @Success     200  {object}  domain.ReturnRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Return not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Invalid transition"
// @Router      /admin/returns/{id}/receive [post]
func (h *Handlers) ReceiveReturn(c *gin.Context) {
	h.returnTransition(c, "return.receive", func() (domain.ReturnRequest, error) {
		return h.deps.Returns.MarkReceived(c.Request.Context(), c.Param("id"))
	})
}

// RefundReturn godoc
// @ID          refundReturn
// @Summary     Issue the refund and close the return
// @Tags        Admin/Returns
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                  true  "Return ID"
// @Param       body  body  handlers.RefundRequest  false "Optional refund amount"
//
// @Success     200  {object}  domain.ReturnRequest
// @Failure     404  {object}  handlers.ErrorResponse  "Return not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Invalid transition"
// @Router      /admin/returns/{id}/refund [post]
func (h *Handlers) RefundReturn(c *gin.Context) {
	var req RefundRequest
	_ = c.ShouldBindJSON(&req)
	h.returnTransition(c, "return.refund", func() (domain.ReturnRequest, error) {
		return h.deps.Returns.ProcessRefund(c.Request.Context(), c.Param("id"), req.Amount)
	})
}
