// Package blobstore is the object storage for uploaded binaries (product
// images, driver documents). Blobs live in a Postgres bytea table keyed by a
// timestamp-prefixed filename; the API serves them back under /files/.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("blob not found")

type Store struct {
	DB      *pgxpool.Pool
	BaseURL string
}

func New(db *pgxpool.Pool, baseURL string) *Store {
	return &Store{DB: db, BaseURL: baseURL}
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS blobs (
			name         TEXT PRIMARY KEY,
			content_type TEXT NOT NULL,
			data         BYTEA NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	return err
}

// Put stores the blob under a timestamp-prefixed name and returns the public
// download URL the owning document records.
func (s *Store) Put(ctx context.Context, filename, contentType string, data []byte) (name, url string, err error) {
	if filename == "" || len(data) == 0 {
		return "", "", errors.New("filename and data are required")
	}
	name = fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filename)
	_, err = s.DB.Exec(ctx,
		`INSERT INTO blobs(name, content_type, data) VALUES ($1, $2, $3)`,
		name, contentType, data)
	if err != nil {
		return "", "", err
	}
	return name, s.URL(name), nil
}

func (s *Store) Get(ctx context.Context, name string) (contentType string, data []byte, err error) {
	err = s.DB.QueryRow(ctx,
		`SELECT content_type, data FROM blobs WHERE name=$1`, name).
		Scan(&contentType, &data)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil, ErrNotFound
	}
	return contentType, data, err
}

func (s *Store) Delete(ctx context.Context, name string) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM blobs WHERE name=$1`, name)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) URL(name string) string {
	return s.BaseURL + "/files/" + name
}
