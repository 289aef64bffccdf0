package store

import "errors"

var errBackendDown = errors.New("backend unavailable")

// MemoryBackend is a map-backed backend for tests. Writes and reads can be
// forced to fail to exercise the fallback path.
type MemoryBackend struct {
	name    string
	data    map[string][]byte
	failing bool
}

func NewMemoryBackend(name string) *MemoryBackend {
	return &MemoryBackend{name: name, data: make(map[string][]byte)}
}

// Fail makes every subsequent Get/Set return an error.
func (b *MemoryBackend) Fail(failing bool) {
	b.failing = failing
}

func (b *MemoryBackend) Get(key string) ([]byte, bool, error) {
	if b.failing {
		return nil, false, errBackendDown
	}
	data, ok := b.data[key]
	return data, ok, nil
}

func (b *MemoryBackend) Set(key string, data []byte) error {
	if b.failing {
		return errBackendDown
	}
	b.data[key] = data
	return nil
}

func (b *MemoryBackend) Delete(key string) error {
	if b.failing {
		return errBackendDown
	}
	delete(b.data, key)
	return nil
}

func (b *MemoryBackend) Name() string { return b.name }

func (b *MemoryBackend) Close() error { return nil }
