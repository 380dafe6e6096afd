package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SaveSetting upserts a key/value pair in the app settings table.
func (s *Store) SaveSetting(ctx context.Context, key, value string) error {
	_, err := s.execWithRetry(ctx,
		`INSERT INTO app_settings (setting_key, setting_value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(setting_key) DO UPDATE SET setting_value = excluded.setting_value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save setting %q: %w", key, err)
	}
	return nil
}

// Setting returns the value stored for key. The second return value is false
// when the key has never been saved.
func (s *Store) Setting(ctx context.Context, key string) (string, bool, error) {
	ctx = ensureContext(ctx)
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT setting_value FROM app_settings WHERE setting_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read setting %q: %w", key, err)
	}
	return value, true, nil
}
