// Package queue defines message payloads exchanged over the message broker.
package queue

// AuditEvent is published after a user action has been committed. It
// carries enough for downstream consumers to build an audit trail or
// trigger notifications without querying the primary database.
type AuditEvent struct {
	Username   string `json:"username"`
	Action     string `json:"action"`
	Details    string `json:"details"`
	OccurredAt string `json:"occurred_at"`
}
