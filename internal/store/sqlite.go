package store

import (
	"context"
	"errors"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// SQLiteBackend stores each document as one row in a documents table.
type SQLiteBackend struct {
	db *gorm.DB
}

func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.Exec(
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	).Error; err != nil {
		return nil, err
	}
	return &SQLiteBackend{db: db}, nil
}

func (b *SQLiteBackend) Name() string {
	return "sqlite"
}

func (b *SQLiteBackend) Get(ctx context.Context, doc Document) ([]byte, bool, error) {
	var row struct {
		Body []byte
	}
	err := b.db.WithContext(ctx).Raw(
		`SELECT body FROM documents WHERE name = ?`, string(doc),
	).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row.Body, true, nil
}

func (b *SQLiteBackend) Put(ctx context.Context, doc Document, data []byte) error {
	return b.db.WithContext(ctx).Exec(
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		string(doc),
		data,
		time.Now().UTC(),
	).Error
}
