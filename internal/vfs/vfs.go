// Package vfs defines the narrow block-I/O collaborator the index
// file (internal/diskann.File) depends on, and a default local-disk
// implementation. spec.md §1 treats the host VFS as an external
// collaborator reached through a narrow interface; this module still
// ships a real implementation of that interface (grounded on the
// os.File-based node/vector file handling of the reference DiskANN
// disk graph store) rather than a mock, so the repository is runnable
// standalone, matching how the teacher's storage.Engine interface is
// backed by a real LSM engine rather than left for a caller to supply.
package vfs

import (
	"os"
	"sync"

	"github.com/xDarkicex/vecindex/internal/verr"
)

// BlockDevice is the block-I/O surface the on-disk graph format is
// built on. All offsets are absolute byte offsets within the
// underlying file.
type BlockDevice interface {
	ReadAt(p []byte, off int64) (int, error)
	WriteAt(p []byte, off int64) (int, error)
	// Append writes p at the current end of file and returns the
	// offset it was written at.
	Append(p []byte) (offset int64, err error)
	Size() (int64, error)
	Sync() error
	Close() error
}

// osBlockDevice is the default BlockDevice, backed by a single
// *os.File opened for read/write. Append is serialized with a mutex so
// that concurrent appends from a single process cannot interleave;
// spec.md §5 assumes a single writer per file in any case.
type osBlockDevice struct {
	mu   sync.Mutex
	file *os.File
}

// OpenFile opens (creating if necessary) the file at path as a
// BlockDevice.
func OpenFile(path string) (BlockDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, verr.IO(err)
	}
	return &osBlockDevice{file: f}, nil
}

func (d *osBlockDevice) ReadAt(p []byte, off int64) (int, error) {
	n, err := d.file.ReadAt(p, off)
	if err != nil {
		return n, verr.IO(err)
	}
	return n, nil
}

func (d *osBlockDevice) WriteAt(p []byte, off int64) (int, error) {
	n, err := d.file.WriteAt(p, off)
	if err != nil {
		return n, verr.IO(err)
	}
	return n, nil
}

func (d *osBlockDevice) Append(p []byte) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	info, err := d.file.Stat()
	if err != nil {
		return 0, verr.IO(err)
	}
	offset := info.Size()
	if _, err := d.file.WriteAt(p, offset); err != nil {
		return 0, verr.IO(err)
	}
	return offset, nil
}

func (d *osBlockDevice) Size() (int64, error) {
	info, err := d.file.Stat()
	if err != nil {
		return 0, verr.IO(err)
	}
	return info.Size(), nil
}

func (d *osBlockDevice) Sync() error {
	if err := d.file.Sync(); err != nil {
		return verr.IO(err)
	}
	return nil
}

func (d *osBlockDevice) Close() error {
	if err := d.file.Close(); err != nil {
		return verr.IO(err)
	}
	return nil
}
