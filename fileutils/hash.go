package fileutils

import (
	"errors"
	"io"
	"os"

	"github.com/cespare/xxhash"
)

// ComputeHash returns a fast non-cryptographic hash of the reader, used for
// cheap change detection (see WatchFile). It reads the reader to EOF and does
// not close it.
func ComputeHash(r io.Reader) (uint64, error) {
	hash := xxhash.New()
	if _, err := io.Copy(hash, r); err != nil {
		return 0, err
	}
	return hash.Sum64(), nil
}

// ComputeFileHash returns the change-detection hash of the file at path.
func ComputeFileHash(path string) (uint64, error) {
	var err error
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}

	defer func() {
		closeErr := file.Close()
		err = errors.Join(err, closeErr)
	}()

	var hash uint64
	hash, err = ComputeHash(file)

	return hash, err
}
