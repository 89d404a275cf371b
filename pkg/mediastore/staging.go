package mediastore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Staging writes incoming multipart files to a local directory so that
// they can be handed to the Store as a path.
type Staging struct {
	Dir string
}

// NewStaging creates the staging directory if needed
func NewStaging(dir string) (*Staging, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir all: %w", err)
	}
	return &Staging{Dir: dir}, nil
}

// Stage copies the uploaded file to a uniquely named local file and
// returns its path. The caller owns the returned file.
func (s *Staging) Stage(fh *multipart.FileHeader) (path string, err error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	path = filepath.Join(s.Dir, "upload-"+uuid.NewString()+Extension(fh.Filename))

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create staged file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		Discard(path)
		return "", fmt.Errorf("write staged file: %w", err)
	}
	if err := dst.Close(); err != nil {
		Discard(path)
		return "", fmt.Errorf("close staged file: %w", err)
	}

	return path, nil
}

// Extension returns the lower-cased extension of name, limited to simple
// alphanumeric extensions.
func Extension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
