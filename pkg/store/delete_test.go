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

func equalTo(value string) Predicate {
	want := block(value)
	return func(_ int, b []byte) bool { return bytes.Equal(b, want) }
}

func TestSwapDelete_Scenarios(t *testing.T) {
	t.Run("delete last record", func(t *testing.T) {
		f, _ := openTestFile(t)
		appendAll(t, f, "AAA111", "BBB222", "CCC333")

		res, err := f.SwapDelete(2)
		require.NoError(t, err)
		assert.False(t, res.Relocated)
		assert.Equal(t, PhaseTruncated, res.Phase)
		assert.Equal(t, 2, res.From)
		assert.Equal(t, 2, res.Remaining)

		assert.Equal(t, []string{"AAA111", "BBB222"}, readAll(t, f))

		_, err = f.LinearSearch(equalTo("CCC333"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete first record swaps in last", func(t *testing.T) {
		f, _ := openTestFile(t)
		appendAll(t, f, "AAA111", "BBB222", "CCC333")

		res, err := f.SwapDelete(0)
		require.NoError(t, err)
		assert.True(t, res.Relocated)
		assert.Equal(t, 2, res.From)
		assert.Equal(t, PhaseTruncated, res.Phase)
		assert.Equal(t, 2, res.Remaining)

		buf := make([]byte, testRecordSize)
		require.NoError(t, f.ReadRecord(0, buf))
		assert.Equal(t, block("CCC333"), buf)
		require.NoError(t, f.ReadRecord(1, buf))
		assert.Equal(t, block("BBB222"), buf)

		count, err := f.RecordCount()
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("delete middle record", func(t *testing.T) {
		f, _ := openTestFile(t)
		appendAll(t, f, "r0", "r1", "r2", "r3", "r4")

		_, err := f.SwapDelete(2)
		require.NoError(t, err)
		assert.Equal(t, []string{"r0", "r1", "r4", "r3"}, readAll(t, f))

		_, err = f.LinearSearch(equalTo("r2"))
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete only record", func(t *testing.T) {
		f, path := openTestFile(t)
		appendAll(t, f, "ONLY")

		res, err := f.SwapDelete(0)
		require.NoError(t, err)
		assert.False(t, res.Relocated)
		assert.Equal(t, 0, res.Remaining)

		count, err := f.RecordCount()
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		index, err := f.LinearSearch(func(int, []byte) bool { return true })
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 0, index)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, int64(0), info.Size())
	})
}

func TestSwapDelete_Invariant(t *testing.T) {
	values := []string{"r0", "r1", "r2", "r3", "r4", "r5"}

	for i := range values {
		f, _ := openTestFile(t)
		appendAll(t, f, values...)
		n := len(values)

		_, err := f.SwapDelete(i)
		require.NoError(t, err)

		count, err := f.RecordCount()
		require.NoError(t, err)
		assert.Equal(t, n-1, count)

		if i != n-1 {
			buf := make([]byte, testRecordSize)
			require.NoError(t, f.ReadRecord(i, buf))
			assert.Equal(t, block(values[n-1]), buf, "former last record must now be at %d", i)
		}

		_, err = f.LinearSearch(equalTo(values[i]))
		assert.ErrorIs(t, err, ErrNotFound, "deleted %s still found", values[i])
	}
}

func TestSwapDelete_OutOfRange(t *testing.T) {
	f, path := openTestFile(t)
	appendAll(t, f, "A", "B")

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, index := range []int{2, 3, -1} {
		res, err := f.SwapDelete(index)
		assert.ErrorIs(t, err, ErrOutOfRange)
		assert.Equal(t, PhaseNone, res.Phase)
		assert.Equal(t, 2, res.Remaining)
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	t.Run("empty file", func(t *testing.T) {
		empty, _ := openTestFile(t)
		_, err := empty.SwapDelete(0)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestSwapDelete_IncompleteTruncate(t *testing.T) {
	f, _ := openTestFile(t)
	appendAll(t, f, "AAA111", "BBB222", "CCC333")

	diskErr := errors.New("resize failed")
	f.truncate = func(int64) error { return diskErr }

	res, err := f.SwapDelete(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompleteDelete)
	assert.ErrorIs(t, err, diskErr)
	assert.Equal(t, PhaseRelocated, res.Phase)
	assert.True(t, res.Relocated)
	assert.Equal(t, 3, res.Remaining)

	// The moved record is duplicated and the file is one record too long
	assert.Equal(t, []string{"CCC333", "BBB222", "CCC333"}, readAll(t, f))
	from := res.From

	t.Run("truncate failure without relocation leaves file unchanged", func(t *testing.T) {
		res, err := f.SwapDelete(2)
		assert.ErrorIs(t, err, ErrIO)
		assert.False(t, errors.Is(err, ErrIncompleteDelete))
		assert.Equal(t, PhaseNone, res.Phase)
		assert.Equal(t, []string{"CCC333", "BBB222", "CCC333"}, readAll(t, f))
	})

	t.Run("retry after recovery completes the delete", func(t *testing.T) {
		f.truncate = f.file.Truncate

		// Retry on the old last slot, not on the original index
		res, err := f.SwapDelete(from)
		require.NoError(t, err)
		assert.Equal(t, PhaseTruncated, res.Phase)
		assert.False(t, res.Relocated)
		assert.Equal(t, []string{"CCC333", "BBB222"}, readAll(t, f))
	})
}

func TestSwapDelete_SyncFailureAfterTruncate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.dat")
	f, err := Open(path, testRecordSize)
	require.NoError(t, err)
	appendAll(t, f, "AAA111", "BBB222", "CCC333")

	osFile := f.file
	f.truncate = func(size int64) error {
		if err := osFile.Truncate(size); err != nil {
			return err
		}
		// Sync fails on a closed descriptor
		return osFile.Close()
	}

	res, err := f.SwapDelete(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIO)
	assert.False(t, errors.Is(err, ErrIncompleteDelete))
	assert.Equal(t, PhaseTruncated, res.Phase)
	assert.True(t, res.Relocated)
	assert.Equal(t, 2, res.Remaining)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(2*testRecordSize), info.Size())
}

func TestDeletePhase_String(t *testing.T) {
	assert.Equal(t, "none", PhaseNone.String())
	assert.Equal(t, "relocated", PhaseRelocated.String())
	assert.Equal(t, "truncated", PhaseTruncated.String())
	assert.Equal(t, "DeletePhase(9)", DeletePhase(9).String())
}
