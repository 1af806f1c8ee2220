package store

import (
	"context"
	"errors"
)

// Document is the logical name of one whole-document JSON store.
type Document string

const (
	DocCustomers     Document = "customerData"
	DocUsers         Document = "users"
	DocOnboarding    Document = "onboarding-submissions"
	DocDeletedUsers  Document = "deletedUsers"
	DocCancellations Document = "cancellation-requests"
	DocPurchases     Document = "purchases"
)

// applyOrder is the fixed order in which staged writes are applied. A
// logical operation spanning several documents commits them in this order,
// so a crash or write failure leaves a predictable partial state.
var applyOrder = []Document{
	DocCustomers,
	DocUsers,
	DocOnboarding,
	DocDeletedUsers,
	DocCancellations,
	DocPurchases,
}

var (
	ErrUnknownDocument = errors.New("unknown_document")
	ErrEncode          = errors.New("encode_document")
	ErrDecode          = errors.New("decode_document")
)

// Backend is the physical medium behind the document store. Get reports
// ok=false when the document has never been written.
type Backend interface {
	Name() string
	Get(ctx context.Context, doc Document) (data []byte, ok bool, err error)
	Put(ctx context.Context, doc Document, data []byte) error
}

// ReadTx reads documents inside a transaction. Reading a document that does
// not exist yet leaves out untouched, so callers start from the
// type-appropriate empty default.
type ReadTx interface {
	Read(doc Document, out any) error
}

// FailedWrite records one staged write that could not be applied.
type FailedWrite struct {
	Doc Document
	Err error
}

// Report says which staged writes were applied and which failed. There is
// no rollback: callers detect partial application instead of assuming
// atomicity.
type Report struct {
	Applied []Document
	Failed  []FailedWrite
}

func (r Report) Ok() bool {
	return len(r.Failed) == 0
}
