package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRecordSize = 8

func block(s string) []byte {
	b := bytes.Repeat([]byte{' '}, testRecordSize)
	copy(b, s)
	return b
}

func openTestFile(t *testing.T) (*File, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.dat")
	f, err := Open(path, testRecordSize, WithSyncWrites(false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f, path
}

func appendAll(t *testing.T, f *File, values ...string) {
	t.Helper()
	for _, v := range values {
		_, err := f.AppendRecord(block(v))
		require.NoError(t, err)
	}
}

func readAll(t *testing.T, f *File) []string {
	t.Helper()
	count, err := f.RecordCount()
	require.NoError(t, err)
	out := make([]string, 0, count)
	buf := make([]byte, testRecordSize)
	for i := 0; i < count; i++ {
		require.NoError(t, f.ReadRecord(i, buf))
		out = append(out, string(bytes.TrimRight(buf, " ")))
	}
	return out
}

func TestOpen(t *testing.T) {
	t.Run("creates missing file", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "record_file_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		path := filepath.Join(tmpDir, "nested", "vehicles.dat")
		f, err := Open(path, testRecordSize)
		require.NoError(t, err)
		defer f.Close()

		assert.FileExists(t, path)
		count, err := f.RecordCount()
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("keeps existing contents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "existing.dat")
		require.NoError(t, os.WriteFile(path, append(block("A"), block("B")...), 0600))

		f, err := Open(path, testRecordSize)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{"A", "B"}, readAll(t, f))
	})

	t.Run("invalid record size", func(t *testing.T) {
		_, err := Open(filepath.Join(t.TempDir(), "x.dat"), 0)
		assert.ErrorIs(t, err, ErrOpen)
	})

	t.Run("path is a directory", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Open(dir, testRecordSize)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOpen)

		var serr *StoreError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "open", serr.Op)
		assert.Equal(t, dir, serr.Path)
	})
}

func TestFile_AppendMonotonicity(t *testing.T) {
	f, _ := openTestFile(t)

	values := []string{"r0", "r1", "r2", "r3", "r4"}
	for i, v := range values {
		index, err := f.AppendRecord(block(v))
		require.NoError(t, err)
		assert.Equal(t, i, index, "append must return the pre-append count")
	}

	count, err := f.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, len(values), count)
	assert.Equal(t, values, readAll(t, f))
}

func TestFile_ReadRecord(t *testing.T) {
	f, _ := openTestFile(t)
	appendAll(t, f, "AAA111", "BBB222")

	buf := make([]byte, testRecordSize)

	t.Run("reads by index regardless of cursor", func(t *testing.T) {
		require.NoError(t, f.ReadRecord(1, buf))
		assert.Equal(t, block("BBB222"), buf)
		require.NoError(t, f.ReadRecord(0, buf))
		assert.Equal(t, block("AAA111"), buf)
	})

	t.Run("past end fails", func(t *testing.T) {
		for _, index := range []int{2, 3, 100, -1} {
			err := f.ReadRecord(index, buf)
			assert.ErrorIs(t, err, ErrOutOfRange, "index %d", index)
		}
	})

	t.Run("wrong buffer size", func(t *testing.T) {
		err := f.ReadRecord(0, make([]byte, testRecordSize-1))
		assert.ErrorIs(t, err, ErrBlockSize)
	})
}

func TestFile_WriteRecord(t *testing.T) {
	f, path := openTestFile(t)
	appendAll(t, f, "AAA111", "BBB222", "CCC333")

	require.NoError(t, f.WriteRecord(1, block("XXX999")))
	assert.Equal(t, []string{"AAA111", "XXX999", "CCC333"}, readAll(t, f))

	t.Run("out of range does not mutate", func(t *testing.T) {
		before, err := os.ReadFile(path)
		require.NoError(t, err)

		for _, index := range []int{3, 4, -1} {
			err := f.WriteRecord(index, block("ZZZ"))
			assert.ErrorIs(t, err, ErrOutOfRange, "index %d", index)
		}

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("wrong buffer size", func(t *testing.T) {
		err := f.WriteRecord(0, []byte("too long for a record"))
		assert.ErrorIs(t, err, ErrBlockSize)
	})
}

func TestFile_AppendWrongSize(t *testing.T) {
	f, _ := openTestFile(t)

	_, err := f.AppendRecord([]byte("abc"))
	assert.ErrorIs(t, err, ErrBlockSize)

	count, err := f.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestFile_TrailingBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.dat")
	data := append(block("A"), block("B")...)
	data = append(data, []byte("xyz")...)
	require.NoError(t, os.WriteFile(path, data, 0600))

	f, err := Open(path, testRecordSize)
	require.NoError(t, err)
	defer f.Close()

	count, err := f.RecordCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count, "record count floors over the partial record")

	stat, err := f.Stat()
	require.NoError(t, err)
	assert.True(t, stat.Corrupt())
	assert.Equal(t, int64(3), stat.TrailingBytes)
	assert.Equal(t, int64(19), stat.SizeBytes)

	// Nothing is repaired
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(19), info.Size())
}

func TestFile_Closed(t *testing.T) {
	f, _ := openTestFile(t)
	appendAll(t, f, "A")
	require.NoError(t, f.Close())
	require.NoError(t, f.Close(), "second close is a no-op")

	buf := make([]byte, testRecordSize)
	assert.ErrorIs(t, f.ReadRecord(0, buf), ErrClosed)
	assert.ErrorIs(t, f.WriteRecord(0, buf), ErrClosed)

	_, err := f.AppendRecord(buf)
	assert.ErrorIs(t, err, ErrClosed)

	_, err = f.RecordCount()
	assert.ErrorIs(t, err, ErrClosed)

	_, err = f.LinearSearch(func(int, []byte) bool { return true })
	assert.ErrorIs(t, err, ErrClosed)
	assert.False(t, errors.Is(err, ErrNotFound))

	_, err = f.SwapDelete(0)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStoreError(t *testing.T) {
	cause := errors.New("disk on fire")
	err := &StoreError{Op: "write", Path: "vehicles.dat", Index: 3, Kind: ErrShortWrite, Err: cause}

	assert.ErrorIs(t, err, ErrShortWrite)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store: write vehicles.dat [3]: short write: disk on fire", err.Error())

	noIndex := &StoreError{Op: "open", Path: "x", Index: -1, Kind: ErrOpen}
	assert.Equal(t, "store: open x: cannot open record file", noIndex.Error())
}
