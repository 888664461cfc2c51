package session

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/client/identity"
	"inkwell/internal/dbx"
)

const (
	keyUsername     = "username"
	keyIDToken      = "id_token"
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*identity.Session, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM session`)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if len(values) == 0 {
		return nil, nil
	}

	return &identity.Session{
		Username:     values[keyUsername],
		IDToken:      values[keyIDToken],
		AccessToken:  values[keyAccessToken],
		RefreshToken: values[keyRefreshToken],
	}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, sess *identity.Session) error {
	values := map[string]string{
		keyUsername:     sess.Username,
		keyIDToken:      sess.IDToken,
		keyAccessToken:  sess.AccessToken,
		keyRefreshToken: sess.RefreshToken,
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for key, value := range values {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO session (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, key, value)
			if err != nil {
				return fmt.Errorf("failed to set session[%s]: %w", key, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
