package provider

import (
	"context"

	"github.com/Hanjarang/news/internal/auth"
)

// Provider defines the contract every external identity provider must
// implement. Implementations return identity facts only and must not
// perform user creation, linking, or session management.
type Provider interface {
	// Name returns the provider identifier (e.g. "google", "kakao").
	Name() string

	// AuthCodeURL returns the provider authorization URL for the given
	// CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for the provider's raw
	// attribute payload.
	Exchange(ctx context.Context, code string) (map[string]any, error)

	// Identify extracts the canonical identity from a raw attribute
	// payload. Missing required fields yield auth.ErrMalformedPayload.
	Identify(attrs map[string]any) (*auth.Identity, error)
}
