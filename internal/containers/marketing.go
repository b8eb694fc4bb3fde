package containers

import (
	"context"
	"strings"
	"time"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

// Subscribers owns the newsletter list. Emails are unique case-insensitively.
type Subscribers struct {
	*collection[domain.EmailSubscriber]
}

// NewSubscribers rehydrates the subscriber list.
func NewSubscribers(ctx context.Context, s store.Store, defaults []domain.EmailSubscriber) *Subscribers {
	return &Subscribers{newCollection(ctx, s, keySubscribers, defaults, func(e domain.EmailSubscriber) string { return e.ID }, false)}
}

// Subscribe adds an email to the list. A previously unsubscribed address is
// re-activated in place; an already-active one returns ErrAlreadySubscribed.
func (s *Subscribers) Subscribe(ctx context.Context, email, source string) (domain.EmailSubscriber, error) {
	email = strings.TrimSpace(email)
	if existing, ok := s.find(func(x domain.EmailSubscriber) bool { return strings.EqualFold(x.Email, email) }); ok {
		if existing.Subscribed {
			return domain.EmailSubscriber{}, ErrAlreadySubscribed
		}
		return s.update(ctx, existing.ID, func(e *domain.EmailSubscriber) {
			e.Subscribed = true
			e.UnsubscribedAt = nil
		})
	}
	now := time.Now().UTC()
	sub := domain.EmailSubscriber{
		ID:         domain.NewID("sub", now),
		Email:      email,
		Source:     source,
		Subscribed: true,
		CreatedAt:  now,
	}
	s.add(ctx, sub)
	return sub, nil
}

// Unsubscribe flags the address as opted out; the record is retained.
func (s *Subscribers) Unsubscribe(ctx context.Context, email string) error {
	existing, ok := s.find(func(x domain.EmailSubscriber) bool { return strings.EqualFold(x.Email, email) })
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	_, err := s.update(ctx, existing.ID, func(e *domain.EmailSubscriber) {
		e.Subscribed = false
		e.UnsubscribedAt = &now
	})
	return err
}

// Active returns the currently subscribed addresses (pure read).
func (s *Subscribers) Active() []domain.EmailSubscriber {
	return s.filter(func(x domain.EmailSubscriber) bool { return x.Subscribed })
}

// Campaigns owns marketing mailings. "Sending" only flips status and stamps
// SentAt; no delivery happens in this system.
type Campaigns struct {
	*collection[domain.EmailCampaign]
}

// NewCampaigns rehydrates the campaign list.
func NewCampaigns(ctx context.Context, s store.Store, defaults []domain.EmailCampaign) *Campaigns {
	return &Campaigns{newCollection(ctx, s, keyCampaigns, defaults, func(c domain.EmailCampaign) string { return c.ID }, false)}
}

// Add creates a draft campaign.
func (c *Campaigns) Add(ctx context.Context, in domain.EmailCampaign) domain.EmailCampaign {
	now := time.Now().UTC()
	in.ID = domain.NewID("camp", now)
	in.Status = "draft"
	in.SentAt = nil
	in.CreatedAt = now
	c.add(ctx, in)
	return in
}

// MarkSent stamps a draft as sent. Re-sending a sent campaign is refused.
func (c *Campaigns) MarkSent(ctx context.Context, id string) (domain.EmailCampaign, error) {
	now := time.Now().UTC()
	return c.updateErr(ctx, id, func(camp *domain.EmailCampaign) error {
		if camp.Status == "sent" {
			return ErrInvalidTransition
		}
		camp.Status = "sent"
		camp.SentAt = &now
		return nil
	})
}

// Remove deletes the campaign outright.
func (c *Campaigns) Remove(ctx context.Context, id string) error { return c.remove(ctx, id) }

// Notifications owns message templates and the rendered-notification log.
type Notifications struct {
	templates *collection[domain.NotificationTemplate]
	logs      *collection[domain.NotificationLog]
}

// NewNotifications rehydrates both collections.
func NewNotifications(ctx context.Context, s store.Store, defaults []domain.NotificationTemplate) *Notifications {
	return &Notifications{
		templates: newCollection(ctx, s, keyTemplates, defaults, func(t domain.NotificationTemplate) string { return t.ID }, false),
		logs:      newCollection(ctx, s, keyNotifyLogs, nil, func(l domain.NotificationLog) string { return l.ID }, true),
	}
}

// Templates returns the template collection in stored order.
func (n *Notifications) Templates() []domain.NotificationTemplate { return n.templates.List() }

// GetTemplate returns one template by id.
func (n *Notifications) GetTemplate(id string) (domain.NotificationTemplate, error) {
	return n.templates.Get(id)
}

// AddTemplate creates a template.
func (n *Notifications) AddTemplate(ctx context.Context, in domain.NotificationTemplate) domain.NotificationTemplate {
	now := time.Now().UTC()
	in.ID = domain.NewID("tpl", now)
	in.CreatedAt = now
	n.templates.add(ctx, in)
	return in
}

// UpdateTemplate applies mutate to a template.
func (n *Notifications) UpdateTemplate(ctx context.Context, id string, mutate func(*domain.NotificationTemplate)) (domain.NotificationTemplate, error) {
	return n.templates.update(ctx, id, mutate)
}

// RemoveTemplate deletes a template outright.
func (n *Notifications) RemoveTemplate(ctx context.Context, id string) error {
	return n.templates.remove(ctx, id)
}

// Send renders a template for a recipient and records the rendered subject
// and body in the log (records-only; nothing is delivered).
func (n *Notifications) Send(ctx context.Context, templateID, recipient string, vars map[string]string) (domain.NotificationLog, error) {
	tpl, err := n.templates.Get(templateID)
	if err != nil {
		return domain.NotificationLog{}, err
	}
	if !tpl.Enabled {
		return domain.NotificationLog{}, ErrTemplateDisabled
	}
	now := time.Now().UTC()
	entry := domain.NotificationLog{
		ID:         domain.NewSuffixedID("notif", now),
		TemplateID: tpl.ID,
		Recipient:  recipient,
		Channel:    tpl.Channel,
		Subject:    renderTemplate(tpl.Subject, vars),
		Body:       renderTemplate(tpl.Body, vars),
		Status:     "sent",
		CreatedAt:  now,
	}
	n.logs.add(ctx, entry)
	return entry, nil
}

// Logs returns the notification log, newest-first.
func (n *Notifications) Logs() []domain.NotificationLog { return n.logs.List() }

// renderTemplate substitutes {name} placeholders.
func renderTemplate(body string, vars map[string]string) string {
	for k, v := range vars {
		body = strings.ReplaceAll(body, "{"+k+"}", v)
	}
	return body
}
