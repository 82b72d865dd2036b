package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pinkcat015/todolist/domain/ports"
)

var ErrInvalidPath = errors.New("storage path escapes the base directory")

// LocalStorage implements StoragePort on the local filesystem. Files are served by
// the API under BaseURL.
type LocalStorage struct {
	basePath string // ./uploads
	baseURL  string // http://localhost:8080/uploads
}

type LocalStorageConfig struct {
	BasePath string
	BaseURL  string
}

func NewLocalStorage(config LocalStorageConfig) (ports.StoragePort, error) {
	if err := os.MkdirAll(config.BasePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: config.BasePath,
		baseURL:  strings.TrimSuffix(config.BaseURL, "/"),
	}, nil
}

func (l *LocalStorage) UploadFile(file io.Reader, path string, size int64, contentType string) (string, error) {
	fullPath, err := l.resolve(path)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	src := file
	if size > 0 {
		src = io.LimitReader(file, size)
	}
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return l.GetFileURL(path), nil
}

// DeleteFile removes the file. A missing file is not an error.
func (l *LocalStorage) DeleteFile(path string) error {
	fullPath, err := l.resolve(path)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	l.cleanupEmptyDirs(filepath.Dir(fullPath))
	return nil
}

func (l *LocalStorage) GetFileURL(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return l.baseURL + path
}

func (l *LocalStorage) GetProviderName() string {
	return "local"
}

func (l *LocalStorage) resolve(path string) (string, error) {
	path = strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
	fullPath := filepath.Join(l.basePath, filepath.FromSlash(path))

	rel, err := filepath.Rel(l.basePath, fullPath)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", ErrInvalidPath
	}
	return fullPath, nil
}

// cleanupEmptyDirs removes empty parents up to the base path.
func (l *LocalStorage) cleanupEmptyDirs(dir string) {
	base := filepath.Clean(l.basePath)
	for dir != base && strings.HasPrefix(dir, base) {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			return
		}
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
