package task

import (
	"context"
	"log/slog"
	"time"
)

// Tasks bundles the notification and audit stubs the handlers enqueue.
// There is no real email or analytics integration yet; each task writes
// a structured log line in lieu of the external call.
type Tasks struct {
	log *slog.Logger
}

func NewTasks(log *slog.Logger) *Tasks {
	return &Tasks{log: log}
}

// SendWelcomeEmail stands in for the welcome mail sent on registration.
func (t *Tasks) SendWelcomeEmail(_ context.Context, email, username string) error {
	t.log.Info("welcome email sent",
		"email", email,
		"username", username,
		"sent_at", time.Now().UTC().Format(time.RFC3339))
	return nil
}

// LogUserAction writes an audit-trail line for a user action.
func (t *Tasks) LogUserAction(_ context.Context, username, action, details string) error {
	t.log.Info("audit",
		"username", username,
		"action", action,
		"details", details,
		"occurred_at", time.Now().UTC().Format(time.RFC3339))
	return nil
}

// ProcessItemCompletion runs follow-up processing when an item flips to
// completed.
func (t *Tasks) ProcessItemCompletion(_ context.Context, itemID uint64, username, title string) error {
	t.log.Info("item completion processed",
		"item_id", itemID,
		"username", username,
		"title", title)
	return nil
}
