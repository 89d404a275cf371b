// Package mediastore uploads staged media files to a remote store and
// deletes them again.
package mediastore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Ujjwal3492/Fitness/prometheus"
	"go.uber.org/zap"
)

// ErrInvalidMediaID is returned for identifiers a backend could never have issued
var ErrInvalidMediaID = errors.New("invalid media id")

// Asset identifies an uploaded media object
type Asset struct {
	// MediaID is the opaque identifier used for later deletion
	MediaID string
	// URL is where the asset can be retrieved from
	URL string
}

// Backend is a concrete remote media store.
type Backend interface {
	// Name is used in logs and metrics.
	Name() string
	// Put uploads the file at localPath. It does not remove the local file.
	Put(ctx context.Context, localPath string) (*Asset, error)
	// Remove deletes the asset with the given id.
	Remove(ctx context.Context, mediaID string) error
}

// Store is the contract the upload lifecycle relies on.
type Store interface {
	// Upload sends the staged file to the backend. The staged file is always
	// removed before Upload returns. ok is false on any failure.
	Upload(ctx context.Context, localPath string) (asset *Asset, ok bool)
	// Delete removes an asset. Failures are logged and returned, callers
	// treat them as best-effort.
	Delete(ctx context.Context, mediaID string) error
}

// Adapter wraps a Backend with the staging cleanup and error swallowing
// guarantees of Store.
type Adapter struct {
	backend Backend
	log     *zap.Logger
	metrics *prometheus.Metrics
}

var _ Store = (*Adapter)(nil)

// NewAdapter creates a Store on top of backend
func NewAdapter(backend Backend, log *zap.Logger, metrics *prometheus.Metrics) *Adapter {
	return &Adapter{
		backend: backend,
		log:     log.With(zap.String("media_backend", backend.Name())),
		metrics: metrics,
	}
}

// Upload implements Store.Upload.
func (a *Adapter) Upload(ctx context.Context, localPath string) (*Asset, bool) {
	if localPath == "" {
		return nil, false
	}
	defer Discard(localPath)

	log := a.log.With(zap.String("local_path", localPath))

	if err := checkRegularFile(localPath); err != nil {
		log.Error("Staged media file is not usable", zap.Error(err))
		a.metrics.RecordMediaOperation("upload", false)
		return nil, false
	}

	asset, err := a.backend.Put(ctx, localPath)
	if err != nil || asset == nil || asset.MediaID == "" {
		if err == nil {
			err = errors.New("backend returned no media id")
		}
		log.Error("Media upload failed", zap.Error(err))
		a.metrics.RecordMediaOperation("upload", false)
		return nil, false
	}

	log.Info("Media uploaded",
		zap.String("media_id", asset.MediaID),
		zap.String("url", asset.URL))
	a.metrics.RecordMediaOperation("upload", true)
	return asset, true
}

// Delete implements Store.Delete.
func (a *Adapter) Delete(ctx context.Context, mediaID string) error {
	if mediaID == "" {
		return nil
	}

	if err := a.backend.Remove(ctx, mediaID); err != nil {
		a.log.Warn("Media delete failed",
			zap.String("media_id", mediaID),
			zap.Error(err))
		a.metrics.RecordMediaOperation("delete", false)
		return fmt.Errorf("delete media %s: %w", mediaID, err)
	}

	a.log.Info("Media deleted", zap.String("media_id", mediaID))
	a.metrics.RecordMediaOperation("delete", true)
	return nil
}

// Discard removes a staged file that will not be uploaded
func Discard(localPath string) {
	if localPath == "" {
		return
	}
	if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
		zap.L().Warn("Failed to remove staged media file",
			zap.String("local_path", localPath),
			zap.Error(err))
	}
}

func checkRegularFile(localPath string) error {
	info, err := os.Stat(localPath)
	if err != nil {
		return fmt.Errorf("stat: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", localPath)
	}
	return nil
}
