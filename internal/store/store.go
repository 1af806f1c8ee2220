package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Store provides whole-document read/modify/write access over a Backend.
//
// A single mutex is held for the duration of every View and Update, which
// restores the single-writer discipline the data model assumes once requests
// are served in parallel: two concurrent cancellations of different projects
// on the same customer would otherwise lose one change, because both
// read-modify-write the entire customer document.
type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *zap.Logger
}

func New(backend Backend, log *zap.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log.Named("store").With(zap.String("backend", backend.Name())),
	}
}

// View runs fn with read-only access to the documents.
func (s *Store) View(ctx context.Context, fn func(tx ReadTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &txn{ctx: ctx, backend: s.backend}
	return fn(tx)
}

// Update runs fn, then applies the writes fn staged in the fixed document
// order. fn returning an error discards all staged writes. Write failures do
// not abort the remaining staged writes; each is logged and reported, so
// callers can tell exactly which documents a partially-failed operation
// reached.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{txn: txn{ctx: ctx, backend: s.backend}, staged: map[Document][]byte{}}
	if err := fn(tx); err != nil {
		return Report{}, err
	}
	if tx.encodeErr != nil {
		return Report{}, tx.encodeErr
	}

	var report Report
	for _, doc := range applyOrder {
		data, ok := tx.staged[doc]
		if !ok {
			continue
		}
		if err := s.backend.Put(ctx, doc, data); err != nil {
			s.log.Error("document write failed",
				zap.String("document", string(doc)),
				zap.Error(err),
			)
			report.Failed = append(report.Failed, FailedWrite{Doc: doc, Err: err})
			continue
		}
		report.Applied = append(report.Applied, doc)
	}
	return report, nil
}

type txn struct {
	ctx     context.Context
	backend Backend
}

func (t *txn) Read(doc Document, out any) error {
	if !known(doc) {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, doc)
	}
	data, ok, err := t.backend.Get(t.ctx, doc)
	if err != nil {
		return err
	}
	if !ok || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDecode, doc, err)
	}
	return nil
}

// Tx stages whole-document replacements on top of read access. Reads see
// writes staged earlier in the same transaction.
type Tx struct {
	txn
	staged    map[Document][]byte
	encodeErr error
}

func (t *Tx) Read(doc Document, out any) error {
	if data, ok := t.staged[doc]; ok {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDecode, doc, err)
		}
		return nil
	}
	return t.txn.Read(doc, out)
}

func (t *Tx) Write(doc Document, value any) {
	if !known(doc) {
		t.encodeErr = fmt.Errorf("%w: %s", ErrUnknownDocument, doc)
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		t.encodeErr = fmt.Errorf("%w: %s: %v", ErrEncode, doc, err)
		return
	}
	t.staged[doc] = data
}

func known(doc Document) bool {
	for _, d := range applyOrder {
		if d == doc {
			return true
		}
	}
	return false
}
