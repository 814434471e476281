// Package backup snapshots record files into a zstd-compressed tar stream
// and restores them.
//
// Swap-delete is not atomic, so an operator takes a snapshot before running
// deletes against a data directory they cannot afford to repair by hand.
// Archives hold flat file names only; directory structure is not preserved.
package backup

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// ErrUnsafePath is returned by Restore for an entry that is not a plain file
// name
var ErrUnsafePath = errors.New("unsafe archive path")

// Snapshot writes the named files from dir to w as a tar stream compressed
// with zstd. Missing files are skipped.
func Snapshot(w io.Writer, dir string, names []string) (written []string, err error) {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	tw := tar.NewWriter(enc)

	defer func() {
		if cerr := tw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close tar stream: %w", cerr)
		}
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close zstd stream: %w", cerr)
		}
	}()

	for _, name := range names {
		ok, err := addFile(tw, dir, name)
		if err != nil {
			return written, err
		}
		if ok {
			written = append(written, name)
		}
	}
	return written, nil
}

func addFile(tw *tar.Writer, dir, name string) (bool, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	hdr := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     name,
		Mode:     int64(info.Mode().Perm()),
		Size:     info.Size(),
		ModTime:  info.ModTime().UTC().Truncate(time.Second),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return false, fmt.Errorf("failed to write header for %s: %w", name, err)
	}
	// Copy exactly the size recorded in the header
	if _, err := io.CopyN(tw, f, info.Size()); err != nil {
		return false, fmt.Errorf("failed to archive %s: %w", name, err)
	}
	return true, nil
}

// Restore extracts a Snapshot stream into dir, overwriting files of the same
// name. Each file is written to a temporary name and renamed into place.
func Restore(r io.Reader, dir string) ([]string, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer dec.Close()

	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var restored []string
	tr := tar.NewReader(dec)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return restored, nil
		}
		if err != nil {
			return restored, fmt.Errorf("failed to read archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		if !safeName(hdr.Name) {
			return restored, fmt.Errorf("%w: %q", ErrUnsafePath, hdr.Name)
		}
		if err := extract(tr, dir, hdr); err != nil {
			return restored, err
		}
		restored = append(restored, hdr.Name)
	}
}

func safeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}

func extract(tr *tar.Reader, dir string, hdr *tar.Header) error {
	tmp, err := os.CreateTemp(dir, "."+hdr.Name+".restore-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", hdr.Name, err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := io.CopyN(tmp, tr, hdr.Size); err != nil {
		cleanup()
		return fmt.Errorf("failed to extract %s: %w", hdr.Name, err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", hdr.Name, err)
	}
	if err := tmp.Chmod(os.FileMode(hdr.Mode).Perm()); err != nil {
		cleanup()
		return fmt.Errorf("failed to chmod %s: %w", hdr.Name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", hdr.Name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, hdr.Name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to restore %s: %w", hdr.Name, err)
	}
	return nil
}
