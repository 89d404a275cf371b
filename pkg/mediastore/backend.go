package mediastore

import (
	"context"
	"fmt"

	"github.com/Ujjwal3492/Fitness/pkg/config"
)

// NewBackend builds the backend selected by MEDIA_BACKEND
func NewBackend(ctx context.Context, cfg config.MediaConfig) (Backend, error) {
	switch cfg.Backend {
	case "filesystem", "":
		return NewFileSystemBackend(cfg.Dir, cfg.PublicBaseURL)
	case "s3":
		return NewS3Backend(ctx, cfg.S3)
	case "cloudinary":
		return NewCloudinaryBackend(cfg.Cloudinary)
	default:
		return nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
	}
}

// unavailableBackend stands in for a backend that could not be configured,
// so the service can start and report upload failures per request.
type unavailableBackend struct {
	name   string
	reason error
}

// Unavailable returns a backend that fails every operation with reason
func Unavailable(name string, reason error) Backend {
	return &unavailableBackend{name: name, reason: reason}
}

func (u *unavailableBackend) Name() string { return u.name }

func (u *unavailableBackend) Put(ctx context.Context, localPath string) (*Asset, error) {
	return nil, fmt.Errorf("%s backend unavailable: %w", u.name, u.reason)
}

func (u *unavailableBackend) Remove(ctx context.Context, mediaID string) error {
	return fmt.Errorf("%s backend unavailable: %w", u.name, u.reason)
}
