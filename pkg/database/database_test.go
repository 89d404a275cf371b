package database

import (
	"path/filepath"
	"testing"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Env: "test"},
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			Name:         filepath.Join(t.TempDir(), "fitness"),
			MaxIdleConns: 1,
			MaxOpenConns: 1,
			LogLevel:     "silent",
		},
	}
}

func TestInitDBAndMigrate(t *testing.T) {
	db, err := InitDB(sqliteConfig(t))
	require.NoError(t, err)

	require.NoError(t, Migrate(db, zap.NewNop()))
	require.NoError(t, Ping(db))

	for _, m := range []interface{}{&model.Trainer{}, &model.Testimonial{}, &model.Lead{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&model.Lead{}, "PhoneNumberHash"))
}

func TestInitDBRejectsUnknownDriver(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.Driver = "mongodb"

	_, err := InitDB(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestInitDBFailsWhenDatabaseIsUnreachable(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Database.Name = filepath.Join(t.TempDir(), "missing", "dir", "fitness")

	_, err := InitDB(cfg)
	assert.Error(t, err)
}
