package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteBackendRoundTrip(t *testing.T) {
	backend, err := NewSQLiteBackend(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	ctx := context.Background()

	_, ok, err := backend.Get(ctx, DocCustomers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Put(ctx, DocCustomers, []byte(`{"k":"v1"}`)))
	data, ok, err := backend.Get(ctx, DocCustomers)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"k":"v1"}`, string(data))

	// Upsert replaces the row.
	require.NoError(t, backend.Put(ctx, DocCustomers, []byte(`{"k":"v2"}`)))
	data, ok, err = backend.Get(ctx, DocCustomers)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"k":"v2"}`, string(data))
}
