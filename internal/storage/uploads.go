package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const DefaultMaxUploadBytes int64 = 10 << 20

var (
	ErrUnsupportedType = errors.New("Unsupported file type")
	ErrTooLarge        = errors.New("File is too large")
	ErrEmptyUpload     = errors.New("File is empty")
)

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

// LocalUploads stores uploaded files flat in one directory under random
// names and hands back the public URL they are served from.
type LocalUploads struct {
	dir      string
	baseURL  string
	maxBytes int64
}

func NewLocalUploads(dir string, baseURL string, maxBytes int64) (*LocalUploads, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalUploads{dir: dir, baseURL: baseURL, maxBytes: maxBytes}, nil
}

func (uploads *LocalUploads) Dir() string {
	return uploads.dir
}

// BaseURL is the prefix of every URL returned by Save.
func (uploads *LocalUploads) BaseURL() string {
	return uploads.baseURL
}

func (uploads *LocalUploads) MaxBytes() int64 {
	return uploads.maxBytes
}

// Save sniffs the content type from the data itself; the client's declared
// type is not trusted.
func (uploads *LocalUploads) Save(source io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(source, uploads.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(data)) > uploads.maxBytes {
		return "", ErrTooLarge
	}

	contentType := http.DetectContentType(data)
	extension, ok := allowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + extension
	temp, err := os.CreateTemp(uploads.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	tempPath := temp.Name()
	if _, err := io.Copy(temp, bytes.NewReader(data)); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("close upload: %w", err)
	}
	if err := os.Rename(tempPath, filepath.Join(uploads.dir, name)); err != nil {
		_ = os.Remove(tempPath)
		return "", fmt.Errorf("store upload: %w", err)
	}
	return path.Join(uploads.baseURL, name), nil
}
