package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadAndDelete(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(LocalStorageConfig{BasePath: base, BaseURL: "http://localhost:8080/uploads/"})
	require.NoError(t, err)

	url, err := s.UploadFile(strings.NewReader("png-bytes"), "avatars/5/abc-me.png", 9, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/avatars/5/abc-me.png", url)

	data, err := os.ReadFile(filepath.Join(base, "avatars", "5", "abc-me.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, s.DeleteFile("avatars/5/abc-me.png"))
	_, err = os.Stat(filepath.Join(base, "avatars"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, s.DeleteFile("avatars/5/missing.png"))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(LocalStorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)

	_, err = s.UploadFile(strings.NewReader("x"), "../../etc/passwd", 1, "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestS3Storage_GetFileURL(t *testing.T) {
	s, err := NewS3Client(S3StorageConfig{Endpoint: "minio:9000", Bucket: "todolist", AccessKey: "k", SecretKey: "s"})
	require.NoError(t, err)
	assert.Equal(t, "http://minio:9000/todolist/avatars/1/a.png", s.GetFileURL("/avatars/1/a.png"))

	cdn, err := NewS3Client(S3StorageConfig{Endpoint: "minio:9000", Bucket: "todolist", PublicURL: "https://cdn.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/avatars/1/a.png", cdn.GetFileURL("avatars/1/a.png"))
}

func TestPublicReadPolicy(t *testing.T) {
	policy, err := PublicReadPolicy("todolist", "/avatars/")
	require.NoError(t, err)

	var decoded struct {
		Statement []struct {
			Resource []string
		}
	}
	require.NoError(t, json.Unmarshal([]byte(policy), &decoded))
	assert.Equal(t, []string{"arn:aws:s3:::todolist/avatars/*"}, decoded.Statement[0].Resource)
}
