// Marketing and back-office record handlers: newsletter subscribers, email
// campaigns, notification templates, and the read-only logs. Campaign sending
// and notification delivery are records-only in this system; nothing leaves
// the process.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
)

// SubscribeRequest signs an email up for the newsletter.
type SubscribeRequest struct {
	Email  string `json:"email" binding:"required,email" example:"dana@example.com"`
	Source string `json:"source" example:"footer"`
}

// UnsubscribeRequest opts an email out; the record is retained.
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// CampaignRequest is the create payload for a draft mailing.
type CampaignRequest struct {
	Name    string `json:"name" binding:"required" example:"Fall lookbook"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// TemplateRequest is the create/update payload for a notification template.
type TemplateRequest struct {
	Name    string `json:"name" binding:"required" example:"order-confirmed"`
	Channel string `json:"channel" binding:"required" example:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required" example:"Hi {name}, your order {orderId} is confirmed."`
	Enabled bool   `json:"enabled"`
}

// SendNotificationRequest renders a template for a recipient.
type SendNotificationRequest struct {
	TemplateID string            `json:"templateId" binding:"required"`
	Recipient  string            `json:"recipient" binding:"required"`
	Variables  map[string]string `json:"variables"`
}

// ActivityLogsResponse is a page of the audit trail, newest-first.
type ActivityLogsResponse struct {
	Logs       []domain.ActivityLog `json:"logs"`
	Pagination Pagination           `json:"pagination"`
}

// Subscribe godoc
// @ID          subscribe
// @Summary     Join the newsletter
// @Description A previously unsubscribed address is re-activated in place; an already-active one is refused.
// @Tags        Marketing
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.SubscribeRequest  true  "Email and signup source"
//
// @Success     201  {object}  domain.EmailSubscriber
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Already subscribed"
// @Router      /subscribe [post]
func (h *Handlers) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "valid email required")
		return
	}
	sub, err := h.deps.Subscribers.Subscribe(c.Request.Context(), req.Email, req.Source)
	if errors.Is(err, containers.ErrAlreadySubscribed) {
		fail(c, http.StatusConflict, ErrCodeAlreadySubscribed, "email already subscribed")
		return
	}
	ok(c, http.StatusCreated, sub)
}

// Unsubscribe godoc
// @ID          unsubscribe
// @Summary     Leave the newsletter
// @Tags        Marketing
// @Accept      json
//
// @Param       body  body  handlers.UnsubscribeRequest  true  "Email"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Email not on the list"
// @Router      /unsubscribe [post]
func (h *Handlers) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "valid email required")
		return
	}
	if err := h.deps.Subscribers.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "email not on the list")
		return
	}
	noContent(c)
}

// ListSubscribers godoc
// @ID          listSubscribers
// @Summary     List newsletter subscribers
// @Description Returns the full list, or only active signups with ?active=1.
// @Tags        Admin/Marketing
// @Produce     json
// @Security    BearerAuth
//
// @Param       active  query  string  false "Only active subscribers when truthy"
//
// @Success     200  {array}  domain.EmailSubscriber
// @Router      /admin/subscribers [get]
func (h *Handlers) ListSubscribers(c *gin.Context) {
	if c.Query("active") != "" {
		ok(c, http.StatusOK, h.deps.Subscribers.Active())
		return
	}
	ok(c, http.StatusOK, h.deps.Subscribers.List())
}

// ListCampaigns godoc
// @ID          listCampaigns
// @Summary     List email campaigns
// @Tags        Admin/Marketing
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}  domain.EmailCampaign
// @Router      /admin/campaigns [get]
func (h *Handlers) ListCampaigns(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Campaigns.List())
}

// CreateCampaign godoc
// @ID          createCampaign
// @Summary     Create a draft campaign
// @Tags        Admin/Marketing
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.CampaignRequest  true  "Campaign payload"
//
// @Success     201  {object}  domain.EmailCampaign
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/campaigns [post]
func (h *Handlers) CreateCampaign(c *gin.Context) {
	var req CampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, subject and body required")
		return
	}
	created := h.deps.Campaigns.Add(c.Request.Context(), domain.EmailCampaign{
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
	})
	h.audit(c, "campaign.create", created.ID, created.Name)
	ok(c, http.StatusCreated, created)
}

// SendCampaign godoc
// @ID          sendCampaign
// @Summary     Mark a campaign as sent
// @Description Records-only: flips the status and stamps the send time. Re-sending a sent campaign is refused.
// @Tags        Admin/Marketing
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Campaign ID"
//
// @Success     200  {object}  domain.EmailCampaign
// @Failure     404  {object}  handlers.ErrorResponse  "Campaign not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already sent"
// @Router      /admin/campaigns/{id}/send [post]
func (h *Handlers) SendCampaign(c *gin.Context) {
	updated, err := h.deps.Campaigns.MarkSent(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, containers.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "campaign not found")
		return
	case errors.Is(err, containers.ErrInvalidTransition):
		fail(c, http.StatusConflict, ErrCodeInvalidTransition, "campaign already sent")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "send failed")
		return
	}
	h.audit(c, "campaign.send", updated.ID, updated.Name)
	ok(c, http.StatusOK, updated)
}

// DeleteCampaign godoc
// @ID          deleteCampaign
// @Summary     Delete a campaign
// @Tags        Admin/Marketing
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Campaign ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Campaign not found"
// @Router      /admin/campaigns/{id} [delete]
func (h *Handlers) DeleteCampaign(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Campaigns.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "campaign not found")
		return
	}
	h.audit(c, "campaign.delete", id, "")
	noContent(c)
}

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List notification templates
// @Tags        Admin/Notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}  domain.NotificationTemplate
// @Router      /admin/notifications/templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Notifications.Templates())
}

// CreateTemplate godoc
// @ID          createTemplate
// @Summary     Create a notification template
// @Tags        Admin/Notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
//
// @Success     201  {object}  domain.NotificationTemplate
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/notifications/templates [post]
func (h *Handlers) CreateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, channel and body required")
		return
	}
	created := h.deps.Notifications.AddTemplate(c.Request.Context(), domain.NotificationTemplate{
		Name:    req.Name,
		Channel: req.Channel,
		Subject: req.Subject,
		Body:    req.Body,
		Enabled: req.Enabled,
	})
	h.audit(c, "template.create", created.ID, created.Name)
	ok(c, http.StatusCreated, created)
}

// UpdateTemplate godoc
// @ID          updateTemplate
// @Summary     Update a notification template
// @Tags        Admin/Notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                    true  "Template ID"
// @Param       body  body  handlers.TemplateRequest  true  "Template payload"
//
// @Success     200  {object}  domain.NotificationTemplate
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Router      /admin/notifications/templates/{id} [put]
func (h *Handlers) UpdateTemplate(c *gin.Context) {
	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "name, channel and body required")
		return
	}
	updated, err := h.deps.Notifications.UpdateTemplate(c.Request.Context(), c.Param("id"), func(t *domain.NotificationTemplate) {
		t.Name = req.Name
		t.Channel = req.Channel
		t.Subject = req.Subject
		t.Body = req.Body
		t.Enabled = req.Enabled
	})
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
		return
	}
	h.audit(c, "template.update", updated.ID, updated.Name)
	ok(c, http.StatusOK, updated)
}

// DeleteTemplate godoc
// @ID          deleteTemplate
// @Summary     Delete a notification template
// @Tags        Admin/Notifications
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Template ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Router      /admin/notifications/templates/{id} [delete]
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Notifications.RemoveTemplate(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
		return
	}
	h.audit(c, "template.delete", id, "")
	noContent(c)
}

// SendNotification godoc
// @ID          sendNotification
// @Summary     Render a notification from a template
// @Description Records-only: substitutes {placeholder} variables and appends to the notification log. Disabled templates are refused.
// @Tags        Admin/Notifications
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.SendNotificationRequest  true  "Template, recipient and variables"
//
// @Success     201  {object}  domain.NotificationLog
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     422  {object}  handlers.ErrorResponse  "Template disabled"
// @Router      /admin/notifications/send [post]
func (h *Handlers) SendNotification(c *gin.Context) {
	var req SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "templateId and recipient required")
		return
	}
	entry, err := h.deps.Notifications.Send(c.Request.Context(), req.TemplateID, req.Recipient, req.Variables)
	switch {
	case errors.Is(err, containers.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
		return
	case errors.Is(err, containers.ErrTemplateDisabled):
		fail(c, http.StatusUnprocessableEntity, ErrCodeTemplateDisabled, "template disabled")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "notification failed")
		return
	}
	ok(c, http.StatusCreated, entry)
}

// ListNotificationLogs godoc
// @ID          listNotificationLogs
// @Summary     List the notification log, newest-first
// @Tags        Admin/Notifications
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}  domain.NotificationLog
// @Router      /admin/notifications/logs [get]
func (h *Handlers) ListNotificationLogs(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Notifications.Logs())
}

// ListActivityLogs godoc
// @ID          listActivityLogs
// @Summary     List the audit trail, newest-first (paginated)
// @Tags        Admin/Activity
// @Produce     json
// @Security    BearerAuth
//
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object}  handlers.ActivityLogsResponse
// @Router      /admin/activity [get]
func (h *Handlers) ListActivityLogs(c *gin.Context) {
	page, pageSize := clampPagination(c)
	items, pagination := paginate(h.deps.Activity.List(), page, pageSize)
	ok(c, http.StatusOK, ActivityLogsResponse{Logs: items, Pagination: pagination})
}
