package metadata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Get returns ("", nil) when key is not stored.
func (r *SQLiteRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *SQLiteRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata`)
	if err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM metadata ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}
	defer rows.Close()

	result := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan metadata row: %w", err)
		}
		result[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate metadata rows: %w", err)
	}

	return result, nil
}

// LastLogin is the remembered login shown as the default at the next prompt.
// At is zero once the user has logged out.
type LastLogin struct {
	Email string
	At    time.Time
}

// RememberLogin stores email and the login time. Run it on a transaction
// handle so both keys change together.
func (r *SQLiteRepository) RememberLogin(ctx context.Context, email string, at time.Time) error {
	if err := r.Set(ctx, KeyLastEmail, email); err != nil {
		return err
	}
	return r.Set(ctx, KeyLastLoginAt, at.UTC().Format(time.RFC3339))
}

// ForgetLoginTime drops the login time and keeps the email.
func (r *SQLiteRepository) ForgetLoginTime(ctx context.Context) error {
	return r.Delete(ctx, KeyLastLoginAt)
}

// LastLogin reads the remembered login. An unparsable time is reported as an
// error together with the email that was read.
func (r *SQLiteRepository) LastLogin(ctx context.Context) (LastLogin, error) {
	var ll LastLogin

	email, err := r.Get(ctx, KeyLastEmail)
	if err != nil {
		return ll, err
	}
	ll.Email = email

	at, err := r.Get(ctx, KeyLastLoginAt)
	if err != nil || at == "" {
		return ll, err
	}
	ll.At, err = time.Parse(time.RFC3339, at)
	if err != nil {
		return ll, fmt.Errorf("invalid metadata[%s]: %w", KeyLastLoginAt, err)
	}
	return ll, nil
}
