package lifecycle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/prometheus"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type trainerFixture struct {
	store   *fakeStore
	repo    *fakeTrainerRepo
	cache   *cache.Memory
	metrics *prometheus.Metrics
	life    *Trainers
}

func newTrainerFixture(t *testing.T) *trainerFixture {
	t.Helper()

	c, err := cache.NewMemory(8, time.Minute)
	require.NoError(t, err)

	f := &trainerFixture{
		store:   newFakeStore(),
		repo:    newFakeTrainerRepo(),
		cache:   c,
		metrics: prometheus.NewMetrics("test", prom.NewRegistry()),
	}
	f.life = NewTrainers(f.repo, Options{
		Store:   f.store,
		Cache:   f.cache,
		Log:     zap.NewNop(),
		Metrics: f.metrics,
	})
	return f
}

func TestTrainerCreate_WithPicture(t *testing.T) {
	f := newTrainerFixture(t)
	staged := stage(t, "portrait.png")

	trainer, err := f.life.Create(context.Background(), TrainerInput{
		FullName:        str("Maya Patel"),
		Location:        str("Pune"),
		Specializations: &model.StringList{"Strength", "Mobility"},
		StagedFile:      staged,
	})
	require.NoError(t, err)

	require.NotEmpty(t, trainer.MediaID)
	assert.Equal(t, "https://cdn.test/"+trainer.MediaID, trainer.ProfilePicture)
	assert.True(t, f.store.has(trainer.MediaID))

	stored, ok := f.repo.records[trainer.ID]
	require.True(t, ok)
	assert.Equal(t, trainer.MediaID, stored.MediaID)
	assert.Equal(t, model.StringList{"Strength", "Mobility"}, stored.Specializations)
	assert.NoFileExists(t, staged)
}

func TestTrainerCreate_WithoutPicture(t *testing.T) {
	f := newTrainerFixture(t)

	trainer, err := f.life.Create(context.Background(), TrainerInput{FullName: str("Maya Patel")})
	require.NoError(t, err)

	assert.Empty(t, trainer.MediaID)
	assert.Empty(t, trainer.ProfilePicture)
	assert.Zero(t, f.store.uploads)
}

func TestTrainerCreate_ValidationNeverUploads(t *testing.T) {
	f := newTrainerFixture(t)
	staged := stage(t, "portrait.png")

	_, err := f.life.Create(context.Background(), TrainerInput{FullName: str("  "), StagedFile: staged})

	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	var lerr *Error
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, lerr.Fields, "fullName")

	assert.Zero(t, f.store.uploads)
	assert.Zero(t, f.repo.creates)
	assert.NoFileExists(t, staged)
}

func TestTrainerCreate_UploadFailureSkipsRepository(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.failUpload = true

	_, err := f.life.Create(context.Background(), TrainerInput{
		FullName:   str("Maya Patel"),
		StagedFile: stage(t, "portrait.png"),
	})

	assert.Equal(t, KindUpload, KindOf(err))
	assert.Zero(t, f.repo.creates)
	assert.Empty(t, f.repo.records)
}

func TestTrainerCreate_RepositoryFailureCompensates(t *testing.T) {
	f := newTrainerFixture(t)
	f.repo.createErr = errors.New("connection reset")

	_, err := f.life.Create(context.Background(), TrainerInput{
		FullName:   str("Maya Patel"),
		StagedFile: stage(t, "portrait.png"),
	})

	assert.Equal(t, KindPersistence, KindOf(err))
	assert.Equal(t, []string{"media-1"}, f.store.deletes)
	assert.False(t, f.store.has("media-1"))
	assert.Empty(t, f.repo.records)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CompensationCounter.WithLabelValues(reasonCreateFailed, "success")))
}

func TestTrainerCreate_CancelledRequestStillCompensates(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.honourCtx = true
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.repo.cancel = cancel

	_, err := f.life.Create(ctx, TrainerInput{
		FullName:   str("Maya Patel"),
		StagedFile: stage(t, "portrait.png"),
	})

	assert.Equal(t, KindPersistence, KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"media-1"}, f.store.deletes)
	assert.False(t, f.store.has("media-1"))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CompensationCounter.WithLabelValues(reasonCreateFailed, "success")))
}

func TestTrainerCreate_SchemaErrorIsValidation(t *testing.T) {
	f := newTrainerFixture(t)
	verr := &model.ValidationError{}
	verr.Add("fullName", "too long")
	f.repo.createErr = verr

	_, err := f.life.Create(context.Background(), TrainerInput{
		FullName:   str("Maya Patel"),
		StagedFile: stage(t, "portrait.png"),
	})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.False(t, f.store.has("media-1"))
}

func TestTrainerCreate_CompensationFailureKeepsOriginalError(t *testing.T) {
	f := newTrainerFixture(t)
	f.repo.createErr = errors.New("connection reset")
	f.store.failDelete = true

	_, err := f.life.Create(context.Background(), TrainerInput{
		FullName:   str("Maya Patel"),
		StagedFile: stage(t, "portrait.png"),
	})

	assert.Equal(t, KindPersistence, KindOf(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.CompensationCounter.WithLabelValues(reasonCreateFailed, "failure")))
}

func TestTrainerUpdate_TextOnlyLeavesMediaAlone(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.seed("media-old")
	seeded := f.repo.seed(model.Trainer{
		FullName:       "Maya Patel",
		Location:       "Pune",
		MediaID:        "media-old",
		ProfilePicture: "https://cdn.test/media-old",
	})

	updated, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{
		Experience: str("10 years"),
		Services:   &model.StringList{"Online coaching"},
	})
	require.NoError(t, err)

	assert.Equal(t, "media-old", updated.MediaID)
	assert.Equal(t, "https://cdn.test/media-old", updated.ProfilePicture)
	assert.Equal(t, "Pune", updated.Location)
	assert.Equal(t, "10 years", updated.Experience)
	assert.Equal(t, model.StringList{"Online coaching"}, updated.Services)
	assert.True(t, updated.UpdatedAt.After(seeded.UpdatedAt))

	assert.Zero(t, f.store.uploads)
	assert.Empty(t, f.store.deletes)
	assert.True(t, f.store.has("media-old"))
}

func TestTrainerUpdate_NewPictureReplacesOld(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.seed("media-old")
	seeded := f.repo.seed(model.Trainer{
		FullName:       "Maya Patel",
		MediaID:        "media-old",
		ProfilePicture: "https://cdn.test/media-old",
	})

	updated, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{StagedFile: stage(t, "new.png")})
	require.NoError(t, err)

	assert.Equal(t, "media-1", updated.MediaID)
	assert.Equal(t, "https://cdn.test/media-1", updated.ProfilePicture)
	assert.True(t, f.store.has("media-1"))
	assert.False(t, f.store.has("media-old"))
	assert.Equal(t, "media-1", f.repo.records[seeded.ID].MediaID)
}

func TestTrainerUpdate_FirstPictureDeletesNothing(t *testing.T) {
	f := newTrainerFixture(t)
	seeded := f.repo.seed(model.Trainer{FullName: "Maya Patel"})

	updated, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{StagedFile: stage(t, "new.png")})
	require.NoError(t, err)

	assert.Equal(t, "media-1", updated.MediaID)
	assert.Empty(t, f.store.deletes)
}

func TestTrainerUpdate_CommitFailureRemovesNewAsset(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.seed("media-old")
	seeded := f.repo.seed(model.Trainer{
		FullName:       "Maya Patel",
		MediaID:        "media-old",
		ProfilePicture: "https://cdn.test/media-old",
	})
	f.repo.updateErr = errors.New("deadlock detected")

	_, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{
		FullName:   str("Maya P."),
		StagedFile: stage(t, "new.png"),
	})

	assert.Equal(t, KindPersistence, KindOf(err))
	assert.False(t, f.store.has("media-1"))
	assert.True(t, f.store.has("media-old"))
	assert.Equal(t, seeded, f.repo.records[seeded.ID])
}

func TestTrainerUpdate_CancelledRequestStillRemovesNewAsset(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.honourCtx = true
	f.store.seed("media-old")
	seeded := f.repo.seed(model.Trainer{FullName: "Maya Patel", MediaID: "media-old"})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.repo.cancel = cancel

	_, err := f.life.Update(ctx, seeded.ID, TrainerInput{StagedFile: stage(t, "new.png")})

	assert.Equal(t, KindPersistence, KindOf(err))
	assert.False(t, f.store.has("media-1"))
	assert.True(t, f.store.has("media-old"))
}

func TestTrainerNameIsTrimmed(t *testing.T) {
	f := newTrainerFixture(t)

	trainer, err := f.life.Create(context.Background(), TrainerInput{FullName: str("  Maya Patel \t")})
	require.NoError(t, err)
	assert.Equal(t, "Maya Patel", f.repo.records[trainer.ID].FullName)

	updated, err := f.life.Update(context.Background(), trainer.ID, TrainerInput{FullName: str(" Maya P. ")})
	require.NoError(t, err)
	assert.Equal(t, "Maya P.", updated.FullName)
}

func TestTrainerUpdate_UploadFailureLeavesRecordUntouched(t *testing.T) {
	f := newTrainerFixture(t)
	seeded := f.repo.seed(model.Trainer{FullName: "Maya Patel"})
	f.store.failUpload = true

	_, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{
		FullName:   str("Maya P."),
		StagedFile: stage(t, "new.png"),
	})

	assert.Equal(t, KindUpload, KindOf(err))
	assert.Equal(t, seeded, f.repo.records[seeded.ID])
}

func TestTrainerUpdate_OldAssetDeleteFailureIsSwallowed(t *testing.T) {
	f := newTrainerFixture(t)
	seeded := f.repo.seed(model.Trainer{
		FullName:       "Maya Patel",
		MediaID:        "media-old",
		ProfilePicture: "https://cdn.test/media-old",
	})
	f.store.failDelete = true

	updated, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{StagedFile: stage(t, "new.png")})
	require.NoError(t, err)
	assert.Equal(t, "media-1", updated.MediaID)
	assert.Equal(t, []string{"media-old"}, f.store.deletes)
}

func TestTrainerUpdate_NotFound(t *testing.T) {
	f := newTrainerFixture(t)
	staged := stage(t, "new.png")

	_, err := f.life.Update(context.Background(), "00000000-0000-0000-0000-000000000000", TrainerInput{StagedFile: staged})

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Zero(t, f.store.uploads)
	assert.NoFileExists(t, staged)
}

func TestTrainerUpdate_BlankNameIsRejectedBeforeUpload(t *testing.T) {
	f := newTrainerFixture(t)
	seeded := f.repo.seed(model.Trainer{FullName: "Maya Patel"})

	_, err := f.life.Update(context.Background(), seeded.ID, TrainerInput{
		FullName:   str(""),
		StagedFile: stage(t, "new.png"),
	})

	assert.Equal(t, KindValidation, KindOf(err))
	assert.Zero(t, f.store.uploads)
}

func TestTrainerDelete(t *testing.T) {
	f := newTrainerFixture(t)
	f.store.seed("media-old")
	seeded := f.repo.seed(model.Trainer{
		FullName:       "Maya Patel",
		MediaID:        "media-old",
		ProfilePicture: "https://cdn.test/media-old",
	})

	require.NoError(t, f.life.Delete(context.Background(), seeded.ID))

	assert.Empty(t, f.repo.records)
	assert.False(t, f.store.has("media-old"))
}

func TestTrainerDelete_MediaFailureStillDeletesRecord(t *testing.T) {
	f := newTrainerFixture(t)
	seeded := f.repo.seed(model.Trainer{
		FullName:       "Maya Patel",
		MediaID:        "media-old",
		ProfilePicture: "https://cdn.test/media-old",
	})
	f.store.failDelete = true

	require.NoError(t, f.life.Delete(context.Background(), seeded.ID))
	assert.Empty(t, f.repo.records)
}

func TestTrainerDelete_NotFound(t *testing.T) {
	f := newTrainerFixture(t)

	err := f.life.Delete(context.Background(), "00000000-0000-0000-0000-000000000000")

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Empty(t, f.store.deletes)
}

func TestTrainerWritesInvalidateListCache(t *testing.T) {
	f := newTrainerFixture(t)
	ctx := context.Background()

	f.cache.Set(ctx, cache.KeyTrainers, []byte(`[]`))
	trainer, err := f.life.Create(ctx, TrainerInput{FullName: str("Maya Patel")})
	require.NoError(t, err)
	_, ok := f.cache.Get(ctx, cache.KeyTrainers)
	assert.False(t, ok)

	f.cache.Set(ctx, cache.KeyTrainers, []byte(`[]`))
	require.NoError(t, f.life.Delete(ctx, trainer.ID))
	_, ok = f.cache.Get(ctx, cache.KeyTrainers)
	assert.False(t, ok)

	f.cache.Set(ctx, cache.KeyTrainers, []byte(`[]`))
	_, err = f.life.Create(ctx, TrainerInput{})
	require.Error(t, err)
	_, ok = f.cache.Get(ctx, cache.KeyTrainers)
	assert.True(t, ok)
}

func TestTrainerOperationsAreCounted(t *testing.T) {
	f := newTrainerFixture(t)

	_, _ = f.life.Create(context.Background(), TrainerInput{FullName: str("Maya Patel")})
	_, _ = f.life.Create(context.Background(), TrainerInput{})

	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecordOperationsCounter.WithLabelValues("trainer", "create", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.metrics.RecordOperationsCounter.WithLabelValues("trainer", "create", "validation")))
}
