package mediastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const dirPrefixLength = 2

// FileSystemBackend keeps media in a local directory that the HTTP server
// exposes under a public base URL.
type FileSystemBackend struct {
	dir     string
	baseURL string
}

var _ Backend = (*FileSystemBackend)(nil)

// NewFileSystemBackend creates the storage directory if needed
func NewFileSystemBackend(dir, baseURL string) (*FileSystemBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir all: %w", err)
	}
	return &FileSystemBackend{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (fs *FileSystemBackend) Name() string { return "filesystem" }

// Dir is the root directory of the stored media
func (fs *FileSystemBackend) Dir() string { return fs.dir }

func (fs *FileSystemBackend) Put(ctx context.Context, localPath string) (*Asset, error) {
	mediaID := strings.ReplaceAll(uuid.NewString(), "-", "") + Extension(localPath)
	filename := fs.filename(mediaID)

	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir all: %w", err)
	}

	if err := copyFile(localPath, filename); err != nil {
		_ = os.Remove(filename)
		return nil, err
	}

	return &Asset{
		MediaID: mediaID,
		URL:     fs.baseURL + "/" + path.Join(mediaID[:dirPrefixLength], mediaID),
	}, nil
}

func (fs *FileSystemBackend) Remove(ctx context.Context, mediaID string) error {
	if !validFileMediaID(mediaID) {
		return fmt.Errorf("%w: %q", ErrInvalidMediaID, mediaID)
	}
	if err := os.Remove(fs.filename(mediaID)); err != nil {
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Exists reports whether an asset is stored
func (fs *FileSystemBackend) Exists(mediaID string) bool {
	if !validFileMediaID(mediaID) {
		return false
	}
	_, err := os.Stat(fs.filename(mediaID))
	return err == nil
}

func (fs *FileSystemBackend) filename(mediaID string) string {
	return filepath.Join(fs.dir, mediaID[:dirPrefixLength], mediaID)
}

func validFileMediaID(mediaID string) bool {
	if len(mediaID) <= dirPrefixLength {
		return false
	}
	return !strings.ContainsAny(mediaID, `/\`) && !strings.Contains(mediaID, "..")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("write: %w", err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return fmt.Errorf("sync: %w", err)
	}
	return out.Close()
}
