package summary

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Hanjarang/news/internal/db"
)

type SQLStore struct {
	db *db.DB
}

func NewSQLStore(db *db.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, sum *Summary) (*Summary, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO summaries (user_id, original_text, summary_text, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		sum.UserID,
		sum.OriginalText,
		sum.SummaryText,
		sum.CreatedAt,
	).Scan(&sum.ID)

	if err != nil {
		return nil, err
	}
	return sum, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int64) (*Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, original_text, summary_text, created_at
		FROM summaries
		WHERE id = $1
	`, id).Scan(&sum.ID, &sum.UserID, &sum.OriginalText, &sum.SummaryText, &sum.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *SQLStore) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, original_text, summary_text, created_at
		FROM summaries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.UserID, &sum.OriginalText, &sum.SummaryText, &sum.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM summaries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
