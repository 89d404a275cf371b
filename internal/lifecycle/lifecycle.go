// Package lifecycle binds media uploads and deletions to trainer and
// testimonial record changes.
//
// Media operations are ordered so that a record never points at a missing
// asset. When a later step fails, an asset uploaded earlier in the same
// operation is removed again by an explicit compensation step. Compensation
// is best-effort: its failures are logged and counted but never change the
// outcome reported to the caller.
package lifecycle

import (
	"context"
	"errors"
	"time"

	"github.com/Ujjwal3492/Fitness/internal/repository"
	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"go.uber.org/zap"
)

// Compensation reasons, used in logs and metrics
const (
	reasonCreateFailed = "create_failed"
	reasonUpdateFailed = "update_failed"
	reasonReplaced     = "replaced"
	reasonDeleted      = "record_deleted"
)

// compensationTimeout bounds a cleanup delete, which outlives the request
const compensationTimeout = 30 * time.Second

// Options carries the collaborators shared by all lifecycles
type Options struct {
	Store   mediastore.Store
	Cache   cache.Cache
	Log     *zap.Logger
	Metrics *prometheus.Metrics
}

type base struct {
	kind     string
	cacheKey string
	store    mediastore.Store
	cache    cache.Cache
	log      *zap.Logger
	metrics  *prometheus.Metrics
}

func newBase(kind, cacheKey string, opts Options) base {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := opts.Cache
	if c == nil {
		c = cache.Nop{}
	}
	return base{
		kind:     kind,
		cacheKey: cacheKey,
		store:    opts.Store,
		cache:    c,
		log:      log.With(zap.String("record", kind)),
		metrics:  opts.Metrics,
	}
}

// upload sends a staged file to the media store
func (b *base) upload(ctx context.Context, stagedFile, message string) (*mediastore.Asset, *Error) {
	asset, ok := b.store.Upload(ctx, stagedFile)
	if !ok {
		return nil, &Error{Kind: KindUpload, Message: message}
	}
	return asset, nil
}

// compensate removes an asset that no record references any more. It runs
// detached from ctx cancellation so a dropped client cannot orphan the asset.
func (b *base) compensate(ctx context.Context, reason, mediaID string) {
	if mediaID == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
	defer cancel()

	err := b.store.Delete(ctx, mediaID)
	b.metrics.RecordCompensation(reason, err == nil)
	if err != nil {
		b.log.Warn("Media cleanup failed, asset is orphaned",
			zap.String("reason", reason),
			zap.String("media_id", mediaID),
			zap.Error(err))
		return
	}
	b.log.Info("Media cleanup succeeded",
		zap.String("reason", reason),
		zap.String("media_id", mediaID))
}

// invalidate drops the cached list after a successful write
func (b *base) invalidate(ctx context.Context) {
	b.cache.Delete(ctx, b.cacheKey)
}

// finish records the outcome of an operation and returns err unchanged
func (b *base) finish(operation string, err error) error {
	outcome := "ok"
	if err != nil {
		var lerr *Error
		if errors.As(err, &lerr) {
			outcome = lerr.Kind.String()
		} else {
			outcome = "error"
		}
	}
	b.metrics.RecordOperation(b.kind, operation, outcome)
	return err
}

func loadError(err error, entity string) *Error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundError(entity)
	}
	return persistenceError(entity, "loading", err)
}
