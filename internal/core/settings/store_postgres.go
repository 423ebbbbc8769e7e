// Copyright (c) 2026 Gazeta. All rights reserved.
// Author: desk@gazeta.news

package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gazetapress/gazeta/internal/platform/apperr"
	"github.com/gazetapress/gazeta/internal/platform/database/schema"
)

// # PostgreSQL Store

// settingStore implements the [Store] interface using pgx.
type settingStore struct {
	pool *pgxpool.Pool
}

// NewStore constructs a PostgreSQL backed settings store.
func NewStore(pool *pgxpool.Pool) Store {
	return &settingStore{pool: pool}
}

func (store *settingStore) Get(context context.Context, key string) (*Setting, error) {
	t := schema.SystemWebsiteSetting
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		t.Key, t.Value, t.UpdatedAt, t.Table, t.Key)

	var setting Setting
	err := store.pool.QueryRow(context, query, key).Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Setting")
		}
		return nil, fmt.Errorf("pg_setting_get_failed: %w", err)
	}
	return &setting, nil
}

func (store *settingStore) All(context context.Context) (map[string]string, error) {
	t := schema.SystemWebsiteSetting
	query := fmt.Sprintf(`SELECT %s, %s FROM %s`, t.Key, t.Value, t.Table)

	rows, err := store.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("pg_setting_all_failed: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("pg_setting_scan_failed: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg_setting_rows_failed: %w", err)
	}
	return values, nil
}

func (store *settingStore) Upsert(context context.Context, key, value string) error {
	t := schema.SystemWebsiteSetting
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()`,
		t.Table, t.Key, t.Value, t.UpdatedAt,
		t.Key, t.Value, t.Value, t.UpdatedAt)

	if _, err := store.pool.Exec(context, query, key, value); err != nil {
		return fmt.Errorf("pg_setting_upsert_failed: %w", err)
	}
	return nil
}
