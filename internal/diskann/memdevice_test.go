package diskann

import (
	"sync"

	"github.com/xDarkicex/vecindex/internal/verr"
)

// memDevice is an in-memory vfs.BlockDevice used by this package's
// tests, grounded on the teacher's in-memory mockEngine/mockCollection
// pair (internal/storage/interfaces.go) generalized from a no-op
// collection store to a byte-addressable block store.
type memDevice struct {
	mu   sync.Mutex
	data []byte
}

func newMemDevice() *memDevice { return &memDevice{} }

func (d *memDevice) ReadAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if off < 0 || off+int64(len(p)) > int64(len(d.data)) {
		return 0, verr.IO(errShortRead)
	}
	n := copy(p, d.data[off:off+int64(len(p))])
	return n, nil
}

func (d *memDevice) WriteAt(p []byte, off int64) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	end := off + int64(len(p))
	if end > int64(len(d.data)) {
		grown := make([]byte, end)
		copy(grown, d.data)
		d.data = grown
	}
	n := copy(d.data[off:end], p)
	return n, nil
}

func (d *memDevice) Append(p []byte) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	off := int64(len(d.data))
	d.data = append(d.data, p...)
	return off, nil
}

func (d *memDevice) Size() (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.data)), nil
}

func (d *memDevice) Sync() error  { return nil }
func (d *memDevice) Close() error { return nil }

type shortReadError struct{}

func (shortReadError) Error() string { return "memdevice: short read" }

var errShortRead = shortReadError{}
