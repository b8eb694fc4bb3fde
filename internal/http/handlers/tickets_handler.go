// Support ticket HTTP handlers.
//
// Customers open tickets and add messages to their own threads; admins assign,
// reply (stamping the first-response time once), and drive the status.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/http/middleware"
)

// CreateTicketRequest opens a support ticket with an initial message.
type CreateTicketRequest struct {
	Subject  string `json:"subject" binding:"required" example:"Order never arrived"`
	Body     string `json:"body" binding:"required"`
	Email    string `json:"email"`
	Priority string `json:"priority" example:"high"`
}

// TicketMessageRequest appends a message to the conversation.
type TicketMessageRequest struct {
	Body string `json:"body" binding:"required"`
}

// AssignTicketRequest sets the handling agent.
type AssignTicketRequest struct {
	Agent string `json:"agent" binding:"required" example:"sam"`
}

// TicketStatusRequest moves the ticket to a new status.
type TicketStatusRequest struct {
	Status string `json:"status" binding:"required" example:"resolved"`
}

// CreateTicket godoc
// @ID          createTicket
// @Summary     Open a support ticket
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID  header  string                        false "Customer identity"
// @Param       body           body    handlers.CreateTicketRequest  true  "Ticket payload"
//
// @Success     201  {object}  domain.SupportTicket
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /tickets [post]
func (h *Handlers) CreateTicket(c *gin.Context) {
	var req CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "subject and body required")
		return
	}
	created := h.deps.Tickets.Add(c.Request.Context(), domain.SupportTicket{
		CustomerID:    middleware.CustomerFrom(c),
		CustomerEmail: req.Email,
		Subject:       req.Subject,
		Priority:      req.Priority,
	}, req.Body)
	ok(c, http.StatusCreated, created)
}

// ListMyTickets godoc
// @ID          listMyTickets
// @Summary     List the caller's tickets
// @Tags        Tickets
// @Produce     json
//
// @Param       X-Customer-ID  header  string  false "Customer identity"
//
// @Success     200  {array}  domain.SupportTicket
// @Router      /tickets [get]
func (h *Handlers) ListMyTickets(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Tickets.ByCustomer(middleware.CustomerFrom(c)))
}

// AddTicketMessage godoc
// @ID          addTicketMessage
// @Summary     Reply on the caller's own ticket
// @Tags        Tickets
// @Accept      json
// @Produce     json
//
// @Param       X-Customer-ID  header  string                         false "Customer identity"
// @Param       id             path    string                         true  "Ticket ID"
// @Param       body           body    handlers.TicketMessageRequest  true  "Message body"
//
// @Success     200  {object}  domain.SupportTicket
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Router      /tickets/{id}/messages [post]
func (h *Handlers) AddTicketMessage(c *gin.Context) {
	var req TicketMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body required")
		return
	}
	customerID := middleware.CustomerFrom(c)
	// A customer may only post to their own thread.
	ticket, err := h.deps.Tickets.Get(c.Param("id"))
	if err != nil || ticket.CustomerID != customerID {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	updated, err := h.deps.Tickets.AddMessage(c.Request.Context(), ticket.ID, customerID, req.Body, false)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	ok(c, http.StatusOK, updated)
}

// ListTickets godoc
// @ID          listTickets
// @Summary     List tickets
// @Tags        Admin/Tickets
// @Produce     json
// @Security    BearerAuth
//
// @Param       status  query  string  false "Status filter"  Enums(open, in_progress, resolved, closed)
//
// @Success     200  {array}  domain.SupportTicket
// @Router      /admin/tickets [get]
func (h *Handlers) ListTickets(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		ok(c, http.StatusOK, h.deps.Tickets.ByStatus(status))
		return
	}
	ok(c, http.StatusOK, h.deps.Tickets.List())
}

// AssignTicket godoc
// @ID          assignTicket
// @Summary     Assign a ticket to an agent
// @Description Assigning an open ticket flips it to in_progress; re-assignment keeps the current status.
// @Tags        Admin/Tickets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                        true  "Ticket ID"
// @Param       body  body  handlers.AssignTicketRequest  true  "Agent"
//
// @Success     200  {object}  domain.SupportTicket
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Router      /admin/tickets/{id}/assign [post]
func (h *Handlers) AssignTicket(c *gin.Context) {
	var req AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "agent required")
		return
	}
	updated, err := h.deps.Tickets.Assign(c.Request.Context(), c.Param("id"), req.Agent)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	h.audit(c, "ticket.assign", updated.ID, req.Agent)
	ok(c, http.StatusOK, updated)
}

// ReplyTicket godoc
// @ID          replyTicket
// @Summary     Reply as support staff
// @Description The first admin-authored message stamps the ticket's first-response time exactly once.
// @Tags        Admin/Tickets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                         true  "Ticket ID"
// @Param       body  body  handlers.TicketMessageRequest  true  "Message body"
//
// @Success     200  {object}  domain.SupportTicket
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Router      /admin/tickets/{id}/messages [post]
func (h *Handlers) ReplyTicket(c *gin.Context) {
	var req TicketMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body required")
		return
	}
	_, email := middleware.AdminFrom(c)
	updated, err := h.deps.Tickets.AddMessage(c.Request.Context(), c.Param("id"), email, req.Body, true)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	}
	h.audit(c, "ticket.reply", updated.ID, "")
	ok(c, http.StatusOK, updated)
}

// SetTicketStatus godoc
// @ID          setTicketStatus
// @Summary     Change a ticket's status
// @Description The first transition to resolved stamps the resolution time; re-resolving does not restamp it.
// @Tags        Admin/Tickets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                        true  "Ticket ID"
// @Param       body  body  handlers.TicketStatusRequest  true  "New status"
//
// @Success     200  {object}  domain.SupportTicket
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Ticket not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Unknown status"
// @Router      /admin/tickets/{id}/status [put]
func (h *Handlers) SetTicketStatus(c *gin.Context) {
	var req TicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}
	updated, err := h.deps.Tickets.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	switch {
	case errors.Is(err, containers.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "ticket not found")
		return
	case errors.Is(err, containers.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeInvalidTransition, "unknown ticket status")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "status change failed")
		return
	}
	h.audit(c, "ticket.status", updated.ID, req.Status)
	ok(c, http.StatusOK, updated)
}
