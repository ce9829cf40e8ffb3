package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredFile describes an upload written to disk.
type StoredFile struct {
	Filename string
	Path     string
	Size     int64
}

// SaveUpload copies an uploaded file into folder under a fresh random name
// that keeps the original extension.
func SaveUpload(fh *multipart.FileHeader, folder string) (*StoredFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	filename := uuid.NewString() + ext
	path := filepath.Join(folder, filename)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, err
	}
	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write %s: %w", filename, err)
	}
	return &StoredFile{Filename: filename, Path: path, Size: n}, nil
}

// RemoveUpload deletes a stored file; a file that is already gone is not an error.
func RemoveUpload(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
