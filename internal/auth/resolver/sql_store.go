package resolver

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Hanjarang/news/internal/db"
)

// SQLStore persists users in Postgres. Uniqueness of
// (provider, provider_id) is enforced by the users_provider_unique
// constraint created in internal/db.
type SQLStore struct {
	db *db.DB
}

func NewSQLStore(db *db.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindByProviderID(ctx context.Context, provider, providerID string) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, provider, provider_id, COALESCE(name, ''), COALESCE(email, ''), created_at
		FROM users
		WHERE provider = $1
		  AND provider_id = $2
	`, provider, providerID))
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.scanUser(s.db.QueryRowContext(ctx, `
		SELECT id, provider, provider_id, COALESCE(name, ''), COALESCE(email, ''), created_at
		FROM users
		WHERE id = $1
	`, id))
}

// Create inserts the user, yielding ErrDuplicateIdentity when another
// row already holds the (provider, provider_id) pair. ON CONFLICT DO
// NOTHING keeps the insert race-free without taking locks.
func (s *SQLStore) Create(ctx context.Context, u *User) (*User, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO users (provider, provider_id, name, email, created_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
		ON CONFLICT (provider, provider_id) DO NOTHING
		RETURNING id
	`,
		u.Provider,
		u.ProviderID,
		u.Name,
		u.Email,
		u.CreatedAt,
	).Scan(&u.ID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDuplicateIdentity
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *SQLStore) UpdateProfile(ctx context.Context, id int64, name, email string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE users
		SET name = NULLIF($2, ''), email = NULLIF($3, '')
		WHERE id = $1
	`, id, name, email)
	return err
}

func (s *SQLStore) scanUser(row *sql.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Provider, &u.ProviderID, &u.Name, &u.Email, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
