package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/internal/repository"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory media store honouring the Store contract
type fakeStore struct {
	mu         sync.Mutex
	assets     map[string]bool
	next       int
	uploads    int
	deletes    []string
	failUpload bool
	failDelete bool
	// honourCtx makes Delete fail on a done context like the real backends
	honourCtx bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{assets: map[string]bool{}}
}

func (s *fakeStore) Upload(ctx context.Context, localPath string) (*mediastore.Asset, bool) {
	defer mediastore.Discard(localPath)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.uploads++
	if s.failUpload {
		return nil, false
	}
	s.next++
	id := fmt.Sprintf("media-%d", s.next)
	s.assets[id] = true
	return &mediastore.Asset{MediaID: id, URL: "https://cdn.test/" + id}, true
}

func (s *fakeStore) Delete(ctx context.Context, mediaID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deletes = append(s.deletes, mediaID)
	if s.honourCtx && ctx.Err() != nil {
		return ctx.Err()
	}
	if s.failDelete {
		return errors.New("media store unreachable")
	}
	delete(s.assets, mediaID)
	return nil
}

func (s *fakeStore) has(mediaID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assets[mediaID]
}

func (s *fakeStore) seed(mediaID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assets[mediaID] = true
}

// fakeTrainerRepo stores trainers in memory; createErr and updateErr
// inject failures.
type fakeTrainerRepo struct {
	records   map[string]model.Trainer
	creates   int
	createErr error
	updateErr error
	deleteErr error
	// cancel, when set, is called by Create and Update before they fail
	// with the context error, as a dropped client would cause.
	cancel context.CancelFunc
}

func newFakeTrainerRepo() *fakeTrainerRepo {
	return &fakeTrainerRepo{records: map[string]model.Trainer{}}
}

func (r *fakeTrainerRepo) Create(ctx context.Context, trainer *model.Trainer) error {
	r.creates++
	if r.cancel != nil {
		r.cancel()
		return fmt.Errorf("create trainer: %w", ctx.Err())
	}
	if r.createErr != nil {
		return r.createErr
	}
	if err := trainer.Validate(); err != nil {
		return err
	}
	trainer.ID = uuid.NewString()
	trainer.CreatedAt = time.Now()
	trainer.UpdatedAt = trainer.CreatedAt
	r.records[trainer.ID] = *trainer
	return nil
}

func (r *fakeTrainerRepo) FindByID(ctx context.Context, id string) (*model.Trainer, error) {
	t, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTrainerRepo) Update(ctx context.Context, id string, patch repository.TrainerPatch) (*model.Trainer, error) {
	if r.cancel != nil {
		r.cancel()
		return nil, fmt.Errorf("update trainer: %w", ctx.Err())
	}
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	t, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&t)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now()
	r.records[id] = t
	return &t, nil
}

func (r *fakeTrainerRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeTrainerRepo) seed(t model.Trainer) model.Trainer {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().Add(-time.Hour)
	t.UpdatedAt = t.CreatedAt
	r.records[t.ID] = t
	return t
}

type fakeTestimonialRepo struct {
	records   map[string]model.Testimonial
	creates   int
	createErr error
	updateErr error
}

func newFakeTestimonialRepo() *fakeTestimonialRepo {
	return &fakeTestimonialRepo{records: map[string]model.Testimonial{}}
}

func (r *fakeTestimonialRepo) Create(ctx context.Context, testimonial *model.Testimonial) error {
	r.creates++
	if r.createErr != nil {
		return r.createErr
	}
	if err := testimonial.Validate(); err != nil {
		return err
	}
	testimonial.ID = uuid.NewString()
	testimonial.CreatedAt = time.Now()
	testimonial.UpdatedAt = testimonial.CreatedAt
	r.records[testimonial.ID] = *testimonial
	return nil
}

func (r *fakeTestimonialRepo) FindByID(ctx context.Context, id string) (*model.Testimonial, error) {
	t, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTestimonialRepo) Update(ctx context.Context, id string, patch repository.TestimonialPatch) (*model.Testimonial, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	t, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&t)
	t.UpdatedAt = time.Now()
	r.records[id] = t
	return &t, nil
}

func (r *fakeTestimonialRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.records[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.records, id)
	return nil
}

func (r *fakeTestimonialRepo) seed(t model.Testimonial) model.Testimonial {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().Add(-time.Hour)
	t.UpdatedAt = t.CreatedAt
	r.records[t.ID] = t
	return t
}

// stage writes a file that stands in for an uploaded multipart file
func stage(t *testing.T, name string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0o600))
	return path
}

func str(s string) *string { return &s }
