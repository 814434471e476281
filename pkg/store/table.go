package store

import (
	"errors"
	"fmt"

	"github.com/ssargent/sealink/pkg/codec"
)

// Table is a File of records of type T packed with a fixed-width codec
type Table[T any] struct {
	file  *File
	codec codec.Codec[T]
}

// OpenTable opens path as a table whose record size is the codec's block size
func OpenTable[T any](path string, c codec.Codec[T], opts ...Option) (*Table[T], error) {
	f, err := Open(path, c.Size(), opts...)
	if err != nil {
		return nil, err
	}
	return &Table[T]{file: f, codec: c}, nil
}

// NewTable wraps an already open File. The file's record size must match the
// codec.
func NewTable[T any](f *File, c codec.Codec[T]) (*Table[T], error) {
	if f.RecordSize() != c.Size() {
		return nil, fmt.Errorf("%w: file %d, codec %d", ErrBlockSize, f.RecordSize(), c.Size())
	}
	return &Table[T]{file: f, codec: c}, nil
}

// File returns the underlying record file
func (t *Table[T]) File() *File {
	return t.file
}

// Close closes the underlying file
func (t *Table[T]) Close() error {
	return t.file.Close()
}

// Count returns the number of records
func (t *Table[T]) Count() (int, error) {
	return t.file.RecordCount()
}

// Append encodes rec and appends it, returning its index
func (t *Table[T]) Append(rec T) (int, error) {
	return t.file.AppendRecord(t.codec.Encode(rec))
}

// Get decodes the record at index
func (t *Table[T]) Get(index int) (T, error) {
	var zero T
	buf := make([]byte, t.codec.Size())
	if err := t.file.ReadRecord(index, buf); err != nil {
		return zero, err
	}
	return t.codec.Decode(buf), nil
}

// Put overwrites the record at index
func (t *Table[T]) Put(index int, rec T) error {
	return t.file.WriteRecord(index, t.codec.Encode(rec))
}

// Find returns the first record for which match is true. It returns an error
// matching ErrNotFound when the scan completes without a match; any other
// error means the scan stopped early.
func (t *Table[T]) Find(match func(T) bool) (int, T, error) {
	var found T
	index, err := t.file.LinearSearch(func(_ int, block []byte) bool {
		rec := t.codec.Decode(block)
		if match(rec) {
			found = rec
			return true
		}
		return false
	})
	if err != nil {
		var zero T
		return index, zero, err
	}
	return index, found, nil
}

// Delete swap-deletes the record at index
func (t *Table[T]) Delete(index int) (DeleteResult, error) {
	return t.file.SwapDelete(index)
}

// DeleteWhere finds the first record matching match and swap-deletes it,
// returning the removed record
func (t *Table[T]) DeleteWhere(match func(T) bool) (T, DeleteResult, error) {
	index, rec, err := t.Find(match)
	if err != nil {
		return rec, DeleteResult{Index: index, From: index}, err
	}
	res, err := t.file.SwapDelete(index)
	return rec, res, err
}

// Scan decodes every record in index order. Returning ErrStopScan from fn
// ends the scan without error.
func (t *Table[T]) Scan(fn func(index int, rec T) error) error {
	err := t.file.Scan(func(i int, block []byte) error {
		return fn(i, t.codec.Decode(block))
	})
	if errors.Is(err, ErrStopScan) {
		return nil
	}
	return err
}

// All returns every record in index order
func (t *Table[T]) All() ([]T, error) {
	var out []T
	err := t.Scan(func(_ int, rec T) error {
		out = append(out, rec)
		return nil
	})
	return out, err
}

// ErrStopScan may be returned from a Scan callback to stop early
var ErrStopScan = errors.New("stop scan")
