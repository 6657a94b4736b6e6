package vecindex

import (
	"fmt"

	"github.com/xDarkicex/vecindex/internal/verr"
)

// Severity classifies how a VectorIndexError should be handled by a
// caller, following the teacher's ErrorSeverity ladder
// (libravdb/errors.go) trimmed to the levels this index actually
// produces.
type Severity int

const (
	SeverityError Severity = iota
	SeverityFatal
)

func (s Severity) String() string {
	if s == SeverityFatal {
		return "FATAL"
	}
	return "ERROR"
}

// VectorIndexError is the structured error returned from every public
// Cursor operation, grounded on the teacher's VectorDBError
// (libravdb/errors.go) but specialized to the seven error kinds
// spec.md §7 names, without that type's recovery-orchestrator and
// retry-budget machinery: this index has exactly one retryable
// condition (I/O) and the caller decides whether to retry it.
type VectorIndexError struct {
	Code      string
	Severity  Severity
	Retryable bool
	Message   string
	Cause     error
}

func (e *VectorIndexError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vecindex: [%s] %s: %s: %v", e.Severity, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("vecindex: [%s] %s: %s", e.Severity, e.Code, e.Message)
}

func (e *VectorIndexError) Unwrap() error { return e.Cause }

// fromInternal wraps an internal/verr.IndexError (or any error) as the
// public VectorIndexError, translating its fatal flag into Severity
// and marking only I/O errors retryable (spec.md §7).
func fromInternal(err error) error {
	if err == nil {
		return nil
	}
	ie, ok := err.(*verr.IndexError)
	if !ok {
		return &VectorIndexError{Code: "Unknown", Severity: SeverityError, Message: err.Error()}
	}
	sev := SeverityError
	if ie.Fatal {
		sev = SeverityFatal
	}
	return &VectorIndexError{
		Code:      ie.Code.String(),
		Severity:  sev,
		Retryable: ie.Code == verr.CodeIO,
		Message:   ie.Message,
		Cause:     ie.Cause,
	}
}

// ErrInvalidText reports malformed textual vector input.
func ErrInvalidText(fragment string) error { return fromInternal(verr.InvalidText(fragment)) }

// ErrInvalidBlob reports a malformed binary vector blob.
func ErrInvalidBlob(reason string) error { return fromInternal(verr.InvalidBlob(reason)) }

// ErrDimensionMismatch reports a vector whose dimension disagrees with
// the index's configured dimension.
func ErrDimensionMismatch(got, want int) error {
	return fromInternal(verr.DimensionMismatch(got, want))
}

// ErrCorrupt reports a structurally invalid header or block; the
// owning Cursor must not be used afterward.
func ErrCorrupt(reason string) error { return fromInternal(verr.Corrupt("%s", reason)) }

// ErrIO wraps a VFS collaborator failure.
func ErrIO(cause error) error { return fromInternal(verr.IO(cause)) }

// ErrPartialBacklink reports that inserting a node succeeded but one
// of its backlinks could not be written; the node remains reachable
// from itself.
func ErrPartialBacklink(neighborID uint64, cause error) error {
	return fromInternal(verr.PartialBacklink(neighborID, cause))
}

// ErrNoMemory reports an allocation failure.
func ErrNoMemory(reason string) error { return fromInternal(verr.NoMemory("%s", reason)) }

// IsFatal reports whether err (as returned by a Cursor method) marks
// the cursor unusable.
func IsFatal(err error) bool {
	var vie *VectorIndexError
	for err != nil {
		if e, ok := err.(*VectorIndexError); ok {
			vie = e
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return vie != nil && vie.Severity == SeverityFatal
}
