package store

import "context"

// MemoryBackend keeps documents in process memory. Used by tests and
// ephemeral deployments.
type MemoryBackend struct {
	docs map[Document][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: map[Document][]byte{}}
}

func (b *MemoryBackend) Name() string {
	return "memory"
}

func (b *MemoryBackend) Get(_ context.Context, doc Document) ([]byte, bool, error) {
	data, ok := b.docs[doc]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (b *MemoryBackend) Put(_ context.Context, doc Document, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	b.docs[doc] = stored
	return nil
}
