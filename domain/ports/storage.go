package ports

import (
	"io"
)

// StoragePort stores user uploads (avatars) on local disk or S3-compatible storage.
type StoragePort interface {
	// UploadFile stores file under path and returns its public URL.
	UploadFile(file io.Reader, path string, size int64, contentType string) (string, error)
	DeleteFile(path string) error
	GetFileURL(path string) string
	GetProviderName() string
}
