// Package verr defines the structured error type shared by the layers
// of the index (vector value, VFS, block format, file, search, insert,
// cursor); internal/codec reports its own short-buffer error. It is deliberately small and import-cycle-free so
// internal/vecvalue and internal/diskann can both depend on it without
// depending on each other or on the top-level vecindex package.
package verr

import (
	"fmt"
)

// Code identifies one of the error kinds spec'd for this index.
type Code int

const (
	CodeUnknown Code = iota
	CodeNoMemory
	CodeInvalidText
	CodeInvalidBlob
	CodeDimensionMismatch
	CodeCorrupt
	CodeIO
	CodePartialBacklink
)

func (c Code) String() string {
	switch c {
	case CodeNoMemory:
		return "NoMemory"
	case CodeInvalidText:
		return "InvalidText"
	case CodeInvalidBlob:
		return "InvalidBlob"
	case CodeDimensionMismatch:
		return "DimensionMismatch"
	case CodeCorrupt:
		return "Corrupt"
	case CodeIO:
		return "IOError"
	case CodePartialBacklink:
		return "PartialBacklink"
	default:
		return "Unknown"
	}
}

// IndexError is the structured error returned across package
// boundaries. Fatal indicates the owning cursor must be treated as
// unusable afterward (spec.md §7: Corrupt aborts the operation and
// marks the cursor unusable).
type IndexError struct {
	Code    Code
	Message string
	Cause   error
	Fatal   bool
}

func (e *IndexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *IndexError) Unwrap() error { return e.Cause }

func new_(code Code, fatal bool, format string, args ...any) *IndexError {
	return &IndexError{Code: code, Message: fmt.Sprintf(format, args...), Fatal: fatal}
}

// NoMemory reports an allocation failure.
func NoMemory(format string, args ...any) *IndexError {
	return new_(CodeNoMemory, false, format, args...)
}

// InvalidText reports malformed textual vector input, echoing the
// offending fragment (callers must already have truncated it to a
// safe length).
func InvalidText(fragment string) *IndexError {
	return new_(CodeInvalidText, false, "malformed vector text %q", fragment)
}

// InvalidBlob reports a blob shorter than its declared framing, or a
// declared element count exceeding the maximum.
func InvalidBlob(reason string) *IndexError {
	return new_(CodeInvalidBlob, false, "%s", reason)
}

// DimensionMismatch reports two vectors (or a vector and an index)
// with differing dimension, stating both observed values.
func DimensionMismatch(got, want int) *IndexError {
	return new_(CodeDimensionMismatch, false, "dimension %d does not match %d", got, want)
}

// Corrupt reports a structurally invalid header or block. It is
// fatal: the owning cursor must refuse further operations.
func Corrupt(format string, args ...any) *IndexError {
	return new_(CodeCorrupt, true, format, args...)
}

// IO wraps a VFS collaborator error.
func IO(cause error) *IndexError {
	e := new_(CodeIO, false, "I/O error")
	e.Cause = cause
	return e
}

// PartialBacklink reports a non-fatal backlink failure during insert;
// the new node remains present and reachable from itself.
func PartialBacklink(neighborID uint64, cause error) *IndexError {
	e := new_(CodePartialBacklink, false, "failed to backlink neighbor %d", neighborID)
	e.Cause = cause
	return e
}

// IsFatal reports whether err (or a wrapped IndexError within it)
// marks its owning cursor unusable.
func IsFatal(err error) bool {
	var ie *IndexError
	for err != nil {
		if e, ok := err.(*IndexError); ok {
			ie = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return ie != nil && ie.Fatal
}
