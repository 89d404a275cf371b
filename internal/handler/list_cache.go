package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/prometheus"
	"github.com/labstack/echo/v4"
)

// listCache serves a rendered list response until a write invalidates it
type listCache struct {
	cache   cache.Cache
	key     string
	metrics *prometheus.Metrics
}

func newListCache(c cache.Cache, key string, metrics *prometheus.Metrics) *listCache {
	if c == nil {
		c = cache.Nop{}
	}
	return &listCache{cache: c, key: key, metrics: metrics}
}

func (l *listCache) get(ctx context.Context) ([]byte, bool) {
	body, ok := l.cache.Get(ctx, l.key)
	l.metrics.RecordCacheLookup(l.key, ok)
	return body, ok
}

// respond renders records, stores the body and writes it
func (l *listCache) respond(c echo.Context, records interface{}) error {
	body, err := json.Marshal(records)
	if err != nil {
		return err
	}
	l.cache.Set(c.Request().Context(), l.key, body)
	return c.JSONBlob(http.StatusOK, body)
}
