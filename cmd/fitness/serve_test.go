package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/Ujjwal3492/Fitness/pkg/database"
	"github.com/Ujjwal3492/Fitness/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewServerWiring(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", filepath.Join(dir, "fitness"))
	t.Setenv("MEDIA_BACKEND", "filesystem")
	t.Setenv("MEDIA_DIR", filepath.Join(dir, "media"))
	t.Setenv("MEDIA_STAGING_DIR", filepath.Join(dir, "staging"))
	t.Setenv("DB_LOG_LEVEL", "silent")

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.InitDB(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))

	metrics := prometheus.NewMetrics("test", prom.NewRegistry())
	e, err := newServer(context.Background(), cfg, zap.NewNop(), db, metrics, cache.Nop{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health?check=db", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/Trainer/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNewServerSurvivesMissingMediaCredentials(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Media: config.MediaConfig{
			Backend:    "s3",
			StagingDir: filepath.Join(dir, "staging"),
		},
		WhatsApp: config.WhatsAppConfig{Keyword: "#feedback"},
	}

	_, err := newServer(context.Background(), cfg, zap.NewNop(), nil, nil, cache.Nop{})
	assert.NoError(t, err)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := newRootCommand()

	names := []string{}
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "migrate")
}
