package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(NewMemoryBackend(), zap.NewNop())
}

func TestReadMissingDocumentLeavesDefault(t *testing.T) {
	s := newTestStore(t)

	users := map[string]string{}
	list := []string{}
	err := s.View(context.Background(), func(tx ReadTx) error {
		if err := tx.Read(DocUsers, &users); err != nil {
			return err
		}
		return tx.Read(DocDeletedUsers, &list)
	})
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Empty(t, list)
}

func TestUpdateRoundTrip(t *testing.T) {
	s := newTestStore(t)

	report, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(DocUsers, map[string]string{"a@b.com": "A"})
		return nil
	})
	require.NoError(t, err)
	assert.True(t, report.Ok())
	assert.Equal(t, []Document{DocUsers}, report.Applied)

	users := map[string]string{}
	err = s.View(context.Background(), func(tx ReadTx) error {
		return tx.Read(DocUsers, &users)
	})
	require.NoError(t, err)
	assert.Equal(t, "A", users["a@b.com"])
}

func TestTxReadSeesStagedWrites(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(DocUsers, map[string]string{"a@b.com": "A"})

		users := map[string]string{}
		if err := tx.Read(DocUsers, &users); err != nil {
			return err
		}
		assert.Equal(t, "A", users["a@b.com"])
		return nil
	})
	require.NoError(t, err)
}

func TestUpdateAppliesWritesInFixedOrder(t *testing.T) {
	s := newTestStore(t)

	// Stage in reverse of the apply order; the report must come back in
	// apply order regardless.
	report, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(DocPurchases, []string{})
		tx.Write(DocDeletedUsers, []string{})
		tx.Write(DocUsers, map[string]string{})
		tx.Write(DocCustomers, map[string]string{})
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []Document{DocCustomers, DocUsers, DocDeletedUsers, DocPurchases}, report.Applied)
}

func TestUpdateErrorDiscardsStagedWrites(t *testing.T) {
	s := newTestStore(t)

	boom := errors.New("boom")
	_, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(DocUsers, map[string]string{"a@b.com": "A"})
		return boom
	})
	require.ErrorIs(t, err, boom)

	users := map[string]string{}
	err = s.View(context.Background(), func(tx ReadTx) error {
		return tx.Read(DocUsers, &users)
	})
	require.NoError(t, err)
	assert.Empty(t, users)
}

// failingBackend fails writes for one document, leaving the rest intact.
type failingBackend struct {
	Backend
	failDoc Document
}

func (b *failingBackend) Put(ctx context.Context, doc Document, data []byte) error {
	if doc == b.failDoc {
		return errors.New("disk full")
	}
	return b.Backend.Put(ctx, doc, data)
}

func (b *failingBackend) Name() string { return "failing" }

func TestUpdateReportsPartialFailure(t *testing.T) {
	s := New(&failingBackend{Backend: NewMemoryBackend(), failDoc: DocUsers}, zap.NewNop())

	report, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(DocCustomers, map[string]string{"k": "v"})
		tx.Write(DocUsers, map[string]string{"a@b.com": "A"})
		tx.Write(DocDeletedUsers, []string{"a@b.com"})
		return nil
	})
	require.NoError(t, err)
	assert.False(t, report.Ok())

	// The failed write does not abort the later staged writes.
	assert.Equal(t, []Document{DocCustomers, DocDeletedUsers}, report.Applied)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, DocUsers, report.Failed[0].Doc)
}

func TestUnknownDocumentRejected(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(Document("bogus"), map[string]string{})
		return nil
	})
	require.ErrorIs(t, err, ErrUnknownDocument)

	err = s.View(context.Background(), func(tx ReadTx) error {
		return tx.Read(Document("bogus"), &map[string]string{})
	})
	require.ErrorIs(t, err, ErrUnknownDocument)
}

func TestFileBackendRoundTrip(t *testing.T) {
	backend, err := NewFileBackend(t.TempDir())
	require.NoError(t, err)
	s := New(backend, zap.NewNop())

	report, err := s.Update(context.Background(), func(tx *Tx) error {
		tx.Write(DocCustomers, map[string]string{"customer-a-b-com": "doc"})
		return nil
	})
	require.NoError(t, err)
	assert.True(t, report.Ok())

	customers := map[string]string{}
	err = s.View(context.Background(), func(tx ReadTx) error {
		return tx.Read(DocCustomers, &customers)
	})
	require.NoError(t, err)
	assert.Equal(t, "doc", customers["customer-a-b-com"])
}
