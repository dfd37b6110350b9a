package cachestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/agrilink/internal/common"
	"github.com/dmitrijs2005/agrilink/internal/dbx"
	"github.com/dmitrijs2005/agrilink/internal/offline"
)

type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

// Keys returns cache names in creation order.
func (s *SQLiteStorage) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM caches ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list caches: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan cache row: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cache rows: %w", err)
	}
	return names, nil
}

// PutAll opens cache, creating it when missing, and stores entries in one
// transaction. Entries with an existing key are replaced.
func (s *SQLiteStorage) PutAll(ctx context.Context, cache string, entries []offline.Entry) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO caches (name) VALUES (?) ON CONFLICT(name) DO NOTHING`, cache); err != nil {
			return fmt.Errorf("failed to create cache %s: %w", cache, err)
		}

		for _, e := range entries {
			header, err := json.Marshal(e.Header)
			if err != nil {
				return fmt.Errorf("failed to encode header of %s: %w", e.Key, err)
			}
			body := e.Body
			if body == nil {
				body = []byte{}
			}

			_, err = tx.ExecContext(ctx, `
				INSERT INTO cache_entries (cache_name, request_key, status, header, body)
				VALUES (?, ?, ?, ?, ?)
				ON CONFLICT(cache_name, request_key) DO UPDATE SET
					status = excluded.status,
					header = excluded.header,
					body   = excluded.body
			`, cache, e.Key, e.Status, header, body)
			if err != nil {
				return fmt.Errorf("failed to store %s in %s: %w", e.Key, cache, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStorage) Match(ctx context.Context, cache, key string) (*offline.Entry, error) {
	var (
		status int
		header []byte
		body   []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT status, header, body FROM cache_entries
		WHERE cache_name = ? AND request_key = ?
	`, cache, key).Scan(&status, &header, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to match %s in %s: %w", key, cache, err)
	}

	var h http.Header
	if err := json.Unmarshal(header, &h); err != nil {
		return nil, fmt.Errorf("failed to decode header of %s: %w", key, err)
	}

	return &offline.Entry{Key: key, Status: status, Header: h, Body: body}, nil
}

// Delete drops cache and its entries.
func (s *SQLiteStorage) Delete(ctx context.Context, cache string) (bool, error) {
	var existed bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cache_entries WHERE cache_name = ?`, cache); err != nil {
			return fmt.Errorf("failed to delete entries of %s: %w", cache, err)
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM caches WHERE name = ?`, cache)
		if err != nil {
			return fmt.Errorf("failed to delete cache %s: %w", cache, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		existed = n > 0
		return nil
	})
	return existed, err
}
