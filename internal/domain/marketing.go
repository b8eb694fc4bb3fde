package domain

import "time"

// EmailSubscriber is a newsletter signup. Email is the uniqueness key
// (case-insensitive).
type EmailSubscriber struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Source         string     `json:"source,omitempty"`
	Subscribed     bool       `json:"subscribed"`
	CreatedAt      time.Time  `json:"createdAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty"`
}

// EmailCampaign is a draft or sent marketing mailing. Sending is records-only
// in this system; no delivery happens.
type EmailCampaign struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Status    string     `json:"status"` // draft | sent
	SentAt    *time.Time `json:"sentAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

// NotificationTemplate is a named message template with {placeholder}
// variables.
type NotificationTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Channel   string    `json:"channel"` // email | sms
	Subject   string    `json:"subject,omitempty"`
	Body      string    `json:"body"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationLog records one rendered notification, carrying the subject and
// body as rendered at send time. Like activity logs it is listed newest-first
// and uses suffixed ids.
type NotificationLog struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"templateId"`
	Recipient  string    `json:"recipient"`
	Channel    string    `json:"channel"`
	Subject    string    `json:"subject,omitempty"`
	Body       string    `json:"body"`
	Status     string    `json:"status"` // queued | sent | failed
	CreatedAt  time.Time `json:"createdAt"`
}
