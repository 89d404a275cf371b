// Package cache keeps rendered list responses between writes.
package cache

import (
	"context"
	"fmt"

	"github.com/Ujjwal3492/Fitness/pkg/config"
	"go.uber.org/zap"
)

// Keys of the cached list responses
const (
	KeyTrainers     = "trainers:list"
	KeyTestimonials = "testimonials:list"
)

// Cache stores opaque byte values by key. Lookups never fail: a backend
// error is logged and reported as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	Delete(ctx context.Context, keys ...string)
}

// New builds the cache selected by CACHE_BACKEND
func New(cfg config.CacheConfig, log *zap.Logger) (Cache, error) {
	switch cfg.Backend {
	case "none", "":
		return Nop{}, nil
	case "memory":
		return NewMemory(cfg.Size, cfg.TTL)
	case "redis":
		return NewRedis(cfg, log)
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.Backend)
	}
}

// Nop is a cache that never stores anything
type Nop struct{}

func (Nop) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (Nop) Set(ctx context.Context, key string, value []byte) {}
func (Nop) Delete(ctx context.Context, keys ...string) {}
