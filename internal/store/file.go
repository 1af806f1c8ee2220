package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBackend keeps one <name>.json file per document under a data
// directory, matching the flat-file deployment variant. Writes go through a
// temp file and rename so readers never observe a partial document.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

func (b *FileBackend) Name() string {
	return "file"
}

func (b *FileBackend) Get(_ context.Context, doc Document) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(doc))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (b *FileBackend) Put(_ context.Context, doc Document, data []byte) error {
	tmp, err := os.CreateTemp(b.dir, string(doc)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, b.path(doc))
}

func (b *FileBackend) path(doc Document) string {
	return filepath.Join(b.dir, string(doc)+".json")
}
