// Package uploads persists binary image attachments from multipart
// submissions and hands back stable file references for the record store.
package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atelier-mireille/backend/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MaxFileSize is the per-file ceiling for intake attachments.
const MaxFileSize int64 = 10 << 20 // 10 MiB

// Store writes accepted files under a dedicated directory, created lazily
// on first use.
type Store struct {
	dir     string
	maxSize int64
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, maxSize: MaxFileSize}
}

// Dir returns the storage directory (exposed for static serving).
func (s *Store) Dir() string {
	return s.dir
}

// Save validates and persists a single file part. The declared content
// type must indicate an image and the size must not exceed the ceiling.
// On acceptance it returns the stored file path.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	ctype := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(ctype, "image/") {
		return "", &domain.MediaTypeError{ContentType: ctype}
	}
	if fh.Size > s.maxSize {
		return "", &domain.FileTooLargeError{Size: fh.Size, Limit: s.maxSize}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", &domain.StorageError{Op: "uploads.mkdir", Err: err}
	}

	src, err := fh.Open()
	if err != nil {
		return "", &domain.StorageError{Op: "uploads.open", Err: err}
	}
	defer src.Close()

	name := s.fileName(fh.Filename)
	path := filepath.Join(s.dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", &domain.StorageError{Op: "uploads.create", Err: err}
	}
	defer dst.Close()

	// the size header is advisory; cap the actual copy as well
	n, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		_ = os.Remove(path)
		return "", &domain.StorageError{Op: "uploads.write", Err: err}
	}
	if n > s.maxSize {
		_ = os.Remove(path)
		return "", &domain.FileTooLargeError{Size: n, Limit: s.maxSize}
	}

	zap.L().Info("upload stored", zap.String("file", name), zap.Int64("size", n))
	return path, nil
}

// SaveAll persists a batch of file parts all-or-nothing: the first
// rejection removes any siblings already written and fails the batch, so
// order creation stays atomic with its attachments.
func (s *Store) SaveAll(fhs []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(fhs))
	for _, fh := range fhs {
		p, err := s.Save(fh)
		if err != nil {
			for _, accepted := range paths {
				s.Remove(accepted)
			}
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Remove deletes a stored file. Paths outside the store directory are
// ignored.
func (s *Store) Remove(path string) {
	if filepath.Dir(path) != filepath.Clean(s.dir) {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("upload remove failed", zap.String("file", path), zap.Error(err))
	}
}

// fileName builds a collision-resistant name from the submission time, a
// random component and the original extension.
func (s *Store) fileName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
}
