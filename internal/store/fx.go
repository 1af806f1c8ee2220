package store

import (
	"github.com/Jguyatt/backend/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewBackend(cfg config.Config) (Backend, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	case config.BackendSQLite:
		return NewSQLiteBackend(cfg.SQLitePath)
	default:
		return NewFileBackend(cfg.DataDir)
	}
}

func Provide(cfg config.Config, log *zap.Logger) (*Store, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, log), nil
}

var Module = fx.Module("store",
	fx.Provide(Provide),
)
