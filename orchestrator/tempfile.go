package orchestrator

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ScopedTempFile is a per-call temporary file whose name carries a fresh
// unique identifier, so concurrent orchestrator calls on the same host
// never collide even though exclusivity is enforced by naming rather than
// an OS lock. Cleanup is guaranteed on every exit path via Close.
type ScopedTempFile struct {
	Path string
}

// NewScopedTempFile creates an empty temp file under dir (or the default
// temp directory if dir is empty) named with prefix and a UUID suffix.
func NewScopedTempFile(dir, prefix string) (*ScopedTempFile, error) {
	name := prefix + "-" + uuid.NewString() + ".batchdb"
	path := filepath.Join(dir, name)
	if dir == "" {
		path = filepath.Join(os.TempDir(), name)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, err
	}
	return &ScopedTempFile{Path: path}, nil
}

// Close removes the temporary file. It is safe to call more than once and
// safe to call whether or not the file was ever written to, matching the
// "released on every exit path" cleanup guarantee.
func (t *ScopedTempFile) Close() error {
	if t == nil || t.Path == "" {
		return nil
	}
	err := os.Remove(t.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
