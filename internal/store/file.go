package store

import (
	"os"
	"path/filepath"
)

// FileBackend writes one JSON file per key into a directory. It is the
// session-storage analog: cheap, always available, typically pointed at the
// OS temp dir so a broken primary store never blocks the user.
type FileBackend struct {
	dir string
}

func NewFile(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// DefaultSessionDir returns the per-session fallback directory.
func DefaultSessionDir() string {
	return filepath.Join(os.TempDir(), "fysio-session")
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(b.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (b *FileBackend) Set(key string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(b.path(key), data, 0o644)
}

func (b *FileBackend) Delete(key string) error {
	err := os.Remove(b.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (b *FileBackend) Name() string { return "file" }

func (b *FileBackend) Close() error { return nil }
