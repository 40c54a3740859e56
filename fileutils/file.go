package fileutils

import "os"

// Exists reports whether path names an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// VerifyWritable returns nil if dirPath is a directory new files can be
// created in.
func VerifyWritable(dirPath string) error {
	fil, err := os.CreateTemp(dirPath, "")
	if err != nil {
		return err
	}
	if err := fil.Close(); err != nil {
		return err
	}
	return os.Remove(fil.Name())
}
