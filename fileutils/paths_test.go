package fileutils_test

import (
	"path/filepath"
	"testing"

	"github.com/skypaper/skypaper/fileutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAssetPath(t *testing.T) {
	path, err := fileutils.DeriveAssetPath("https://host/a/b/image.jpg", "/tmp")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp", "image.jpg"), path)
}

func TestDeriveAssetPath_NoSlash(t *testing.T) {
	_, err := fileutils.DeriveAssetPath("noslash", "/tmp")
	assert.ErrorIs(t, err, fileutils.ErrMalformedIdentifier)
}

func TestDeriveAssetPath_EmptyTrailingSegment(t *testing.T) {
	_, err := fileutils.DeriveAssetPath("https://host/a/", "/tmp")
	assert.ErrorIs(t, err, fileutils.ErrMalformedIdentifier)
}

func TestDeriveAssetPath_BareName(t *testing.T) {
	path, err := fileutils.DeriveAssetPath("/image.png", "/var/cache")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/var/cache", "image.png"), path)
}
