package store

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrOpen             = errors.New("cannot open record file")
	ErrClosed           = errors.New("record file is closed")
	ErrOutOfRange       = errors.New("record index out of range")
	ErrIO               = errors.New("i/o failure")
	ErrShortRead        = errors.New("short read")
	ErrShortWrite       = errors.New("short write")
	ErrBlockSize        = errors.New("block size does not match record size")
	ErrNotFound         = errors.New("record not found")
	ErrIncompleteDelete = errors.New("delete relocated a record but did not truncate")
)

// StoreError describes a failed engine operation. It matches both its Kind
// (one of the sentinel errors above) and the underlying cause with errors.Is.
type StoreError struct {
	Op    string
	Path  string
	Index int
	Kind  error
	Err   error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("store: %s %s", e.Op, e.Path)
	if e.Index >= 0 {
		msg += fmt.Sprintf(" [%d]", e.Index)
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Predicate is called by LinearSearch for every record in index order.
// block is reused between calls and must not be retained.
type Predicate func(index int, block []byte) bool

// DeletePhase records how far a swap-delete got
type DeletePhase int

const (
	// PhaseNone means the file was not modified
	PhaseNone DeletePhase = iota
	// PhaseRelocated means the last record was copied over the target but
	// the file still has its old length, so the moved record appears twice
	PhaseRelocated
	// PhaseTruncated means the delete completed
	PhaseTruncated
)

func (p DeletePhase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseRelocated:
		return "relocated"
	case PhaseTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("DeletePhase(%d)", int(p))
	}
}

// DeleteResult describes the outcome of SwapDelete
type DeleteResult struct {
	Index     int         // Slot that was deleted
	From      int         // Index of the record moved into Index; equals Index when nothing moved
	Relocated bool        // Whether a record was moved
	Phase     DeletePhase // Last step that completed
	Remaining int         // Record count after the call
}

// FileStat summarizes the physical state of a record file
type FileStat struct {
	Path          string
	RecordSize    int
	SizeBytes     int64
	Records       int
	TrailingBytes int64 // Bytes past the last whole record; non-zero means corruption
}

// Corrupt reports whether the file size is not a multiple of the record size
func (s FileStat) Corrupt() bool {
	return s.TrailingBytes != 0
}
