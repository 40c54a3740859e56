package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skypaper/skypaper/fileutils"
)

func TestExists(t *testing.T) {
	testPath := filepath.Join(t.TempDir(), "present.txt")
	err := os.WriteFile(testPath, data, 0600)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{
			name:     "existing file",
			path:     testPath,
			expected: true,
		},
		{
			name:     "non-existent file",
			path:     filepath.Join(t.TempDir(), "absent.txt"),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := fileutils.Exists(tc.path)
			if result != tc.expected {
				t.Errorf("Expected Exists(%q) = %v, got %v", tc.path, tc.expected, result)
			}
		})
	}
}

func TestVerifyWritable(t *testing.T) {
	if err := fileutils.VerifyWritable(t.TempDir()); err != nil {
		t.Errorf("expected tempdir to be writable: %v", err)
	}
}

func TestVerifyWritable_Missing(t *testing.T) {
	if err := fileutils.VerifyWritable(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
