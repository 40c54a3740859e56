package fileutils

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrMalformedIdentifier is returned when a remote identifier has no usable
// trailing path segment to name a local file after.
var ErrMalformedIdentifier = errors.New("malformed remote identifier")

// DeriveAssetPath returns the local path for an asset downloaded from
// remoteID: the segment after the last "/" joined onto baseDir. The path is
// not checked against existing files; callers that need collision-free names
// should name files by content fingerprint instead.
func DeriveAssetPath(remoteID string, baseDir string) (string, error) {
	idx := strings.LastIndex(remoteID, "/")
	if idx < 0 {
		return "", fmt.Errorf("%w: no path separator in %q", ErrMalformedIdentifier, remoteID)
	}

	name := remoteID[idx+1:]
	if name == "" {
		return "", fmt.Errorf("%w: empty trailing segment in %q", ErrMalformedIdentifier, remoteID)
	}

	return filepath.Join(baseDir, name), nil
}
