package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/Hanjarang/news/internal/auth"
)

// User is the persisted local record an external identity resolves to.
type User struct {
	ID         int64     `json:"id"`
	Provider   string    `json:"provider"`
	ProviderID string    `json:"providerId"`
	Name       string    `json:"name,omitempty"`
	Email      string    `json:"email,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

var (
	// ErrUserNotFound is returned by lookups that match no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateIdentity is returned by Create when the
	// (provider, provider_id) uniqueness constraint is violated.
	ErrDuplicateIdentity = errors.New("identity already exists")
)

// UserStore is the persistence seam for users. The storage layer, not
// application logic, enforces at most one row per (provider, provider_id).
type UserStore interface {
	FindByProviderID(ctx context.Context, provider, providerID string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, u *User) (*User, error)
	UpdateProfile(ctx context.Context, id int64, name, email string) error
}

// Resolver determines which local user an external identity belongs to.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*User, error)
}

// Service implements find-or-create over a UserStore. A create that
// loses the uniqueness race falls back to a second lookup, so concurrent
// first-time logins for the same identity all observe one user.
type Service struct {
	store UserStore
	now   func() time.Time
}

func NewService(store UserStore) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) Resolve(ctx context.Context, identity *auth.Identity) (*User, error) {
	if identity == nil || identity.Provider == "" || identity.ProviderID == "" {
		return nil, errors.New("resolver: identity missing provider or provider id")
	}

	u, err := s.store.FindByProviderID(ctx, identity.Provider, identity.ProviderID)
	if err == nil {
		return s.refreshProfile(ctx, u, identity), nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, wrapPersistence(err)
	}

	created, err := s.store.Create(ctx, &User{
		Provider:   identity.Provider,
		ProviderID: identity.ProviderID,
		Name:       identity.Name,
		Email:      identity.Email,
		CreatedAt:  s.now(),
	})
	if err == nil {
		return created, nil
	}
	if !errors.Is(err, ErrDuplicateIdentity) {
		return nil, wrapPersistence(err)
	}

	// Lost the race to a concurrent first login. The row must exist now.
	u, err = s.store.FindByProviderID(ctx, identity.Provider, identity.ProviderID)
	if err != nil {
		return nil, wrapPersistence(err)
	}
	return u, nil
}

// refreshProfile backfills name/email when the provider now supplies a
// non-empty value that differs from the stored one. Backfill failure is
// not fatal for the login.
func (s *Service) refreshProfile(ctx context.Context, u *User, identity *auth.Identity) *User {
	name, email := u.Name, u.Email
	if identity.Name != "" {
		name = identity.Name
	}
	if identity.Email != "" {
		email = identity.Email
	}
	if name == u.Name && email == u.Email {
		return u
	}
	if err := s.store.UpdateProfile(ctx, u.ID, name, email); err != nil {
		return u
	}
	u.Name, u.Email = name, email
	return u
}

func wrapPersistence(err error) error {
	return errors.Join(auth.ErrPersistence, err)
}
