package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log/level"
)

// File is an open file of fixed-size records with no header. Record i lives
// at byte offset i*RecordSize and the record count is the file size divided
// by the record size, rounded down.
//
// A File is owned by exactly one caller. There is no locking, and opening the
// same path from several goroutines or processes races on writes and
// truncation. Every operation positions itself; none relies on where a
// previous call left the file cursor.
type File struct {
	file       *os.File
	path       string
	recordSize int
	opts       options

	// truncate shortens the file during SwapDelete
	truncate func(size int64) error
}

// Open opens path for reading and writing, creating it (and its parent
// directory) if it does not exist
func Open(path string, recordSize int, opts ...Option) (*File, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if recordSize <= 0 {
		err := &StoreError{Op: "open", Path: path, Index: -1, Kind: ErrOpen, Err: fmt.Errorf("invalid record size %d", recordSize)}
		o.metrics.observe("open", err)
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		serr := &StoreError{Op: "open", Path: path, Index: -1, Kind: ErrOpen, Err: err}
		o.metrics.observe("open", serr)
		return nil, serr
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, o.fileMode)
	if err != nil {
		serr := &StoreError{Op: "open", Path: path, Index: -1, Kind: ErrOpen, Err: err}
		o.metrics.observe("open", serr)
		return nil, serr
	}

	f := &File{
		file:       file,
		path:       path,
		recordSize: recordSize,
		opts:       o,
		truncate:   file.Truncate,
	}

	stat, err := f.Stat()
	if err != nil {
		_ = file.Close()
		o.metrics.observe("open", err)
		return nil, err
	}

	if stat.Corrupt() {
		// Reported only. The trailing bytes stay where they are.
		o.metrics.corrupt()
		level.Warn(o.logger).Log("msg", "record file has trailing bytes", "path", path,
			"record_size", recordSize, "trailing_bytes", stat.TrailingBytes)
	}

	level.Debug(o.logger).Log("msg", "opened record file", "path", path, "records", stat.Records)
	o.metrics.observe("open", nil)
	return f, nil
}

// Path returns the file path
func (f *File) Path() string {
	return f.path
}

// RecordSize returns the fixed block width
func (f *File) RecordSize() int {
	return f.recordSize
}

// Close closes the underlying file. Calling Close more than once is a no-op.
func (f *File) Close() error {
	if f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	if err != nil {
		return f.fail("close", -1, ErrIO, err)
	}
	return nil
}

// RecordCount returns the number of whole records in the file. A partial
// trailing record is ignored; use Stat to detect it.
func (f *File) RecordCount() (int, error) {
	size, err := f.size("count")
	if err != nil {
		return 0, err
	}
	return int(size / int64(f.recordSize)), nil
}

// Stat reports the file size, whole-record count and any trailing bytes
func (f *File) Stat() (FileStat, error) {
	size, err := f.size("stat")
	if err != nil {
		return FileStat{}, err
	}
	rs := int64(f.recordSize)
	return FileStat{
		Path:          f.path,
		RecordSize:    f.recordSize,
		SizeBytes:     size,
		Records:       int(size / rs),
		TrailingBytes: size % rs,
	}, nil
}

// ReadRecord reads the record at index into out, which must be exactly
// RecordSize bytes. On error the contents of out are unspecified.
func (f *File) ReadRecord(index int, out []byte) (err error) {
	defer func() { f.opts.metrics.observe("read", err) }()

	if err := f.check("read", index, out); err != nil {
		return err
	}
	if err := f.readAt(index, out); err != nil {
		return f.fail("read", index, ErrShortRead, err)
	}
	return nil
}

// WriteRecord overwrites the existing record at index with in. It never
// extends the file; writing at or past RecordCount fails with ErrOutOfRange.
func (f *File) WriteRecord(index int, in []byte) (err error) {
	defer func() { f.opts.metrics.observe("write", err) }()

	if err := f.check("write", index, in); err != nil {
		return err
	}
	if err := f.writeAt(index, in); err != nil {
		return f.fail("write", index, ErrShortWrite, err)
	}
	return f.sync("write", index)
}

// AppendRecord writes in at the end of the file and returns its index, which
// is the record count before the call. This is the only operation that grows
// the file.
func (f *File) AppendRecord(in []byte) (index int, err error) {
	defer func() { f.opts.metrics.observe("append", err) }()

	if f.file == nil {
		return 0, f.fail("append", -1, ErrClosed, nil)
	}
	if len(in) != f.recordSize {
		return 0, f.fail("append", -1, ErrBlockSize, fmt.Errorf("got %d bytes, want %d", len(in), f.recordSize))
	}

	end, err := f.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, f.fail("append", -1, ErrIO, err)
	}
	if rem := end % int64(f.recordSize); rem != 0 {
		level.Warn(f.opts.logger).Log("msg", "appending after partial record", "path", f.path, "trailing_bytes", rem)
	}

	index = int(end / int64(f.recordSize))
	n, err := f.file.Write(in)
	if err == nil && n < len(in) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return 0, f.fail("append", index, ErrShortWrite, err)
	}

	if err := f.sync("append", index); err != nil {
		return 0, err
	}
	return index, nil
}

// LinearSearch reads records in ascending index order and returns the index
// of the first one for which match returns true.
//
// The three outcomes are distinct:
//   - found: (index, nil)
//   - exhausted: (RecordCount, ErrNotFound)
//   - I/O failure mid-scan: (index of the failed read, a *StoreError)
func (f *File) LinearSearch(match Predicate) (index int, err error) {
	defer func() { f.opts.metrics.observe("search", err) }()

	count, err := f.RecordCount()
	if err != nil {
		return 0, err
	}

	buf := make([]byte, f.recordSize)
	for i := 0; i < count; i++ {
		if err := f.readAt(i, buf); err != nil {
			return i, f.fail("search", i, ErrShortRead, err)
		}
		if match(i, buf) {
			return i, nil
		}
	}
	return count, ErrNotFound
}

// Scan calls fn for every record in index order, stopping at the first
// error. block is reused between calls.
func (f *File) Scan(fn func(index int, block []byte) error) error {
	count, err := f.RecordCount()
	if err != nil {
		return err
	}

	buf := make([]byte, f.recordSize)
	for i := 0; i < count; i++ {
		if err := f.readAt(i, buf); err != nil {
			return f.fail("scan", i, ErrShortRead, err)
		}
		if err := fn(i, buf); err != nil {
			return err
		}
	}
	return nil
}

// SwapDelete removes the record at index by copying the last record over it
// and truncating the file by one record. Deleting the last record skips the
// copy. The record previously at RecordCount-1 now lives at index, so any
// index held for it is stale.
//
// The two steps are not atomic. If truncation fails after the copy, the
// result has Phase == PhaseRelocated and the error matches
// ErrIncompleteDelete: the moved record appears at both index and the old
// last slot, and the file is one record too long. Index already holds the
// moved record, so the retry is SwapDelete(res.From): deleting the duplicate
// in the last slot needs no relocation and only truncates. If a sync fails
// after the truncate, Phase is PhaseTruncated and Remaining is the new count.
func (f *File) SwapDelete(index int) (res DeleteResult, err error) {
	defer func() { f.opts.metrics.observe("delete", err) }()

	res = DeleteResult{Index: index, From: index, Phase: PhaseNone}

	count, err := f.RecordCount()
	if err != nil {
		return res, err
	}
	res.Remaining = count

	if index < 0 || index >= count {
		return res, f.fail("delete", index, ErrOutOfRange, fmt.Errorf("%d records", count))
	}

	last := count - 1
	if index != last {
		buf := make([]byte, f.recordSize)
		if err := f.readAt(last, buf); err != nil {
			return res, f.fail("delete", last, ErrShortRead, err)
		}
		// A failed write here can leave the target slot partly overwritten.
		if err := f.writeAt(index, buf); err != nil {
			return res, f.fail("delete", index, ErrShortWrite, err)
		}
		res.From = last
		res.Relocated = true
		res.Phase = PhaseRelocated
		f.opts.metrics.relocated()
		level.Debug(f.opts.logger).Log("msg", "relocated record", "path", f.path, "from", last, "to", index)
	}

	if err := f.truncate(int64(last) * int64(f.recordSize)); err != nil {
		if res.Relocated {
			f.opts.metrics.incompleteDelete()
			level.Warn(f.opts.logger).Log("msg", "delete left duplicate record", "path", f.path,
				"index", index, "duplicate", last, "err", err)
			return res, f.fail("delete", index, ErrIncompleteDelete, err)
		}
		return res, f.fail("delete", index, ErrIO, err)
	}

	res.Phase = PhaseTruncated
	res.Remaining = last

	// The file is already shorter; a sync failure does not undo that.
	if err := f.sync("delete", index); err != nil {
		return res, err
	}

	level.Debug(f.opts.logger).Log("msg", "truncated record file", "path", f.path, "records", last)
	return res, nil
}

// check validates state, buffer size and index bounds for positional I/O
func (f *File) check(op string, index int, buf []byte) error {
	if f.file == nil {
		return f.fail(op, index, ErrClosed, nil)
	}
	if len(buf) != f.recordSize {
		return f.fail(op, index, ErrBlockSize, fmt.Errorf("got %d bytes, want %d", len(buf), f.recordSize))
	}
	count, err := f.RecordCount()
	if err != nil {
		return err
	}
	if index < 0 || index >= count {
		return f.fail(op, index, ErrOutOfRange, fmt.Errorf("%d records", count))
	}
	return nil
}

func (f *File) size(op string) (int64, error) {
	if f.file == nil {
		return 0, f.fail(op, -1, ErrClosed, nil)
	}
	info, err := f.file.Stat()
	if err != nil {
		return 0, f.fail(op, -1, ErrIO, err)
	}
	return info.Size(), nil
}

func (f *File) offset(index int) int64 {
	return int64(index) * int64(f.recordSize)
}

func (f *File) readAt(index int, buf []byte) error {
	n, err := f.file.ReadAt(buf, f.offset(index))
	if n == len(buf) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func (f *File) writeAt(index int, buf []byte) error {
	n, err := f.file.WriteAt(buf, f.offset(index))
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return err
}

func (f *File) sync(op string, index int) error {
	if !f.opts.syncWrites {
		return nil
	}
	if err := f.file.Sync(); err != nil {
		return f.fail(op, index, ErrIO, err)
	}
	return nil
}

func (f *File) fail(op string, index int, kind, err error) error {
	return &StoreError{Op: op, Path: f.path, Index: index, Kind: kind, Err: err}
}
