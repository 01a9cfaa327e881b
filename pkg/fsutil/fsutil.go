// Package fsutil holds the shared filesystem helpers for the patchers.
package fsutil

import (
	"os"
	"path/filepath"

	"github.com/retrokit/retrogen/pkg/errors"
)

// AtomicWriteFile writes data to path via a temp file in the same
// directory followed by a rename, so an interrupted run never leaves a
// half-written config file behind.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp*")
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "could not create temp file in %s", dir)
	}
	tmpName := tmp.Name()

	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr != nil || cerr != nil {
		_ = os.Remove(tmpName)
		if werr == nil {
			werr = cerr
		}
		return errors.Wrapf(werr, errors.ErrFileWrite, "could not write %s", path)
	}

	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "could not set mode on %s", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, errors.ErrFileWrite, "could not replace %s", path)
	}
	return nil
}
