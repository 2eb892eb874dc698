package session

import (
	"context"
	"time"
)

// Session binds an opaque token to a resolved user. Attributes carries
// the raw provider payload so auth endpoints can echo it back without
// another provider round-trip.
type Session struct {
	SessionID  string         `json:"sessionId"`
	UserID     int64          `json:"userId"`
	Attributes map[string]any `json:"attributes,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	ExpiresAt  time.Time      `json:"expiresAt"`
}

// Store defines how sessions are persisted. Implementations must treat
// session contents as opaque.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
