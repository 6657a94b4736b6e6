package diskann

import (
	"sync"

	"github.com/xDarkicex/vecindex/internal/obs"
	"github.com/xDarkicex/vecindex/internal/verr"
	"github.com/xDarkicex/vecindex/internal/vfs"
)

// File is the append-only sequence of fixed-size blocks backing one
// index: a header block at offset 0 followed by one block per graph
// node. It owns its BlockDevice exclusively for its lifetime
// (spec.md §3, Ownership & lifecycle).
type File struct {
	mu      sync.Mutex
	dev     vfs.BlockDevice
	header  *Header
	layout  *Layout
	metrics *obs.Metrics
}

// OpenOptions configures Open for the empty-file (create) path.
type OpenOptions struct {
	Dimension  int
	BlockSize  int // 0 selects DefaultBlockSize
	Similarity uint16
	Metrics    *obs.Metrics // optional
}

// Open opens path as a BlockDevice and then opens it as an index
// file: writing a fresh header if the file is empty, or validating
// the existing header otherwise (spec.md §4.4).
func Open(path string, opts OpenOptions) (*File, error) {
	dev, err := vfs.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return OpenDevice(dev, opts)
}

// OpenDevice is Open against an already-open BlockDevice, used by
// tests and by hosts that manage the device lifecycle themselves.
func OpenDevice(dev vfs.BlockDevice, opts OpenOptions) (*File, error) {
	metrics := opts.Metrics
	if metrics == nil {
		metrics = obs.Noop()
	}

	size, err := dev.Size()
	if err != nil {
		return nil, err
	}

	blockSize := opts.BlockSize
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	f := &File{dev: dev, metrics: metrics}

	if size == 0 {
		if opts.Dimension < 1 || opts.Dimension > 16000 {
			return nil, verr.Corrupt("dimension %d out of range", opts.Dimension)
		}
		similarity := opts.Similarity
		header := &Header{
			BlockSize:  blockSize,
			VectorType: VectorTypeF32,
			Dimension:  uint16(opts.Dimension),
			Similarity: similarity,
		}
		if _, err := dev.Append(EncodeHeader(header)); err != nil {
			return nil, err
		}
		f.header = header
		f.layout = NewLayout(header.BlockSize, opts.Dimension)
		return f, nil
	}

	headerBlock := make([]byte, blockSize)
	if _, err := dev.ReadAt(headerBlock, 0); err != nil {
		return nil, err
	}
	header, err := DecodeHeader(headerBlock)
	if err != nil {
		return nil, err
	}
	f.header = header
	f.layout = NewLayout(header.BlockSize, int(header.Dimension))

	if header.EntryOffset == 0 && size > int64(header.BlockSize) {
		if err := f.recoverEntryPoint(size); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// recoverEntryPoint implements spec.md §9, open question 2: when the
// file is non-empty but entry_offset was not observed as durable,
// scan blocks and adopt the lowest-offset one that decodes validly as
// the new entry point, then persist the header.
func (f *File) recoverEntryPoint(size int64) error {
	blockSize := int64(f.header.BlockSize)
	for off := blockSize; off < size; off += blockSize {
		raw := make([]byte, f.header.BlockSize)
		if _, err := f.dev.ReadAt(raw, off); err != nil {
			continue
		}
		if _, err := DecodeBlock(f.layout, raw, size); err != nil {
			continue
		}
		f.header.EntryOffset = uint64(off)
		return f.UpdateHeader(f.header)
	}
	return nil
}

// Header returns the current header. Callers must not mutate the
// returned value; use UpdateHeader.
func (f *File) Header() *Header { return f.header }

// Layout returns the node block layout derived from the header.
func (f *File) Layout() *Layout { return f.layout }

// BlockSize returns the real block size in bytes.
func (f *File) BlockSize() int { return f.header.BlockSize }

// AppendBlock appends exactly one block's worth of bytes, returning
// the offset it was written at (the pre-append file size).
func (f *File) AppendBlock(b []byte) (int64, error) {
	if len(b) != f.header.BlockSize {
		return 0, verr.Corrupt("block has wrong size %d, want %d", len(b), f.header.BlockSize)
	}
	off, err := f.dev.Append(b)
	if err != nil {
		return 0, err
	}
	f.metrics.BlockWrites.Inc()
	return off, nil
}

// ReadBlock reads the block at offset off.
func (f *File) ReadBlock(off int64) ([]byte, error) {
	b := make([]byte, f.header.BlockSize)
	if _, err := f.dev.ReadAt(b, off); err != nil {
		return nil, err
	}
	f.metrics.BlockReads.Inc()
	return b, nil
}

// WriteBlock overwrites the block at offset off in place.
func (f *File) WriteBlock(off int64, b []byte) error {
	if len(b) != f.header.BlockSize {
		return verr.Corrupt("block has wrong size %d, want %d", len(b), f.header.BlockSize)
	}
	if _, err := f.dev.WriteAt(b, off); err != nil {
		return err
	}
	f.metrics.BlockWrites.Inc()
	return nil
}

// Size reports the current file size in bytes.
func (f *File) Size() (int64, error) {
	return f.dev.Size()
}

// UpdateHeader persists h as the new header and adopts it as current.
func (f *File) UpdateHeader(h *Header) error {
	if err := f.WriteBlock(0, EncodeHeader(h)); err != nil {
		return err
	}
	f.header = h
	return nil
}

// ReadNode reads and decodes the node at offset off.
func (f *File) ReadNode(off int64) (*Node, error) {
	raw, err := f.ReadBlock(off)
	if err != nil {
		return nil, err
	}
	size, err := f.Size()
	if err != nil {
		return nil, err
	}
	return DecodeBlock(f.layout, raw, size)
}

// WriteNewNode encodes node and appends it as a new block, returning
// the offset it was written at.
func (f *File) WriteNewNode(node *Node) (int64, error) {
	b, err := EncodeBlock(f.layout, node)
	if err != nil {
		return 0, err
	}
	return f.AppendBlock(b)
}

// OverwriteNode encodes node and writes it back at its existing
// offset off (used by backlink updates, which never move a node).
func (f *File) OverwriteNode(off int64, node *Node) error {
	b, err := EncodeBlock(f.layout, node)
	if err != nil {
		return err
	}
	return f.WriteBlock(off, b)
}

// Close releases the underlying BlockDevice.
func (f *File) Close() error {
	return f.dev.Close()
}
