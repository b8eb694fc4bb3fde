package containers

import (
	"context"
	"errors"
	"testing"

	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/store"
)

func shippedTemplate(t *testing.T, n *Notifications) domain.NotificationTemplate {
	t.Helper()
	return n.AddTemplate(context.Background(), domain.NotificationTemplate{
		Name:    "Order shipped",
		Channel: "email",
		Subject: "Your order {order} is on its way",
		Body:    "Hi {name}, order {order} shipped today.",
		Enabled: true,
	})
}

func TestNotifications_Send_RecordsRenderedContent(t *testing.T) {
	n := NewNotifications(context.Background(), store.NullStore{}, nil)
	tpl := shippedTemplate(t, n)

	entry, err := n.Send(context.Background(), tpl.ID, "ada@example.com", map[string]string{
		"name": "Ada", "order": "ord_100",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if entry.Subject != "Your order ord_100 is on its way" {
		t.Fatalf("subject = %q", entry.Subject)
	}
	if entry.Body != "Hi Ada, order ord_100 shipped today." {
		t.Fatalf("body = %q", entry.Body)
	}
	if entry.TemplateID != tpl.ID || entry.Channel != "email" || entry.Status != "sent" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestNotifications_Send_DifferentVarsYieldDifferentLogs(t *testing.T) {
	n := NewNotifications(context.Background(), store.NullStore{}, nil)
	tpl := shippedTemplate(t, n)

	first, err := n.Send(context.Background(), tpl.ID, "ada@example.com", map[string]string{
		"name": "Ada", "order": "ord_100",
	})
	if err != nil {
		t.Fatalf("first send: %v", err)
	}
	second, err := n.Send(context.Background(), tpl.ID, "bo@example.com", map[string]string{
		"name": "Bo", "order": "ord_200",
	})
	if err != nil {
		t.Fatalf("second send: %v", err)
	}

	if first.Body == second.Body || first.Subject == second.Subject {
		t.Fatalf("variables did not flow into the log: %q vs %q", first.Body, second.Body)
	}

	// The log keeps the rendered content, newest-first.
	logs := n.Logs()
	if len(logs) != 2 {
		t.Fatalf("logs = %d entries, want 2", len(logs))
	}
	if logs[0].Body != second.Body || logs[1].Body != first.Body {
		t.Fatalf("log order or content wrong: %+v", logs)
	}
}

func TestNotifications_Send_DisabledAndMissingTemplates(t *testing.T) {
	n := NewNotifications(context.Background(), store.NullStore{}, nil)
	tpl := n.AddTemplate(context.Background(), domain.NotificationTemplate{
		Name: "Dormant", Channel: "sms", Body: "unused", Enabled: false,
	})

	if _, err := n.Send(context.Background(), tpl.ID, "x@example.com", nil); !errors.Is(err, ErrTemplateDisabled) {
		t.Fatalf("disabled template: err = %v", err)
	}
	if _, err := n.Send(context.Background(), "tpl_missing", "x@example.com", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing template: err = %v", err)
	}
	if got := len(n.Logs()); got != 0 {
		t.Fatalf("refused sends must not be logged, got %d entries", got)
	}
}

func TestNotifications_Send_PersistsLogAcrossReload(t *testing.T) {
	s := newMemStore(t)
	ctx := context.Background()

	n := NewNotifications(ctx, s, nil)
	tpl := shippedTemplate(t, n)
	sent, err := n.Send(ctx, tpl.ID, "ada@example.com", map[string]string{"name": "Ada", "order": "ord_7"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	reloaded := NewNotifications(ctx, s, nil)
	logs := reloaded.Logs()
	if len(logs) != 1 {
		t.Fatalf("reloaded logs = %d entries, want 1", len(logs))
	}
	if logs[0].Subject != sent.Subject || logs[0].Body != sent.Body {
		t.Fatalf("rendered content lost on reload: %+v", logs[0])
	}
}
