package lifecycle

import (
	"context"
	"strings"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/internal/repository"
	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"go.uber.org/zap"
)

const testimonialEntity = "Testimonial"

// TestimonialRepository is the storage the testimonial lifecycle writes to
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *model.Testimonial) error
	FindByID(ctx context.Context, id string) (*model.Testimonial, error)
	Update(ctx context.Context, id string, patch repository.TestimonialPatch) (*model.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

// TestimonialInput carries the fields of a create or update request.
// StagedFile is the local path of an uploaded video; it is required on
// create.
type TestimonialInput struct {
	Name        *string
	Designation *string
	StagedFile  string
}

// Testimonials runs the upload-commit lifecycle for testimonial records
type Testimonials struct {
	base
	repo TestimonialRepository
}

// NewTestimonials creates the testimonial lifecycle
func NewTestimonials(repo TestimonialRepository, opts Options) *Testimonials {
	return &Testimonials{
		base: newBase("testimonial", cache.KeyTestimonials, opts),
		repo: repo,
	}
}

// Create uploads the testimonial video and stores the testimonial
func (l *Testimonials) Create(ctx context.Context, in TestimonialInput) (*model.Testimonial, error) {
	verr := &model.ValidationError{}
	if in.StagedFile == "" {
		verr.Add("testimonialVideo", "Testimonial video file is required.")
	}
	if isBlank(in.Name) {
		verr.Add("name", "Testimonial name is required.")
	}
	if isBlank(in.Designation) {
		verr.Add("designation", "Testimonial designation is required.")
	}
	if len(verr.Fields) > 0 {
		mediastore.Discard(in.StagedFile)
		return nil, l.finish("create", validationError(verr))
	}

	asset, uerr := l.upload(ctx, in.StagedFile, "Server error: Failed to upload video to cloud storage.")
	if uerr != nil {
		return nil, l.finish("create", uerr)
	}

	testimonial := &model.Testimonial{
		Name:        strings.TrimSpace(*in.Name),
		Designation: strings.TrimSpace(*in.Designation),
		VideoURL:    asset.URL,
		MediaID:     asset.MediaID,
	}

	if err := l.repo.Create(ctx, testimonial); err != nil {
		l.log.Error("Failed to store testimonial", zap.Error(err))
		l.compensate(ctx, reasonCreateFailed, asset.MediaID)
		return nil, l.finish("create", persistenceError(testimonialEntity, "creating", err))
	}

	l.invalidate(ctx)
	l.log.Info("Testimonial created",
		zap.String("id", testimonial.ID),
		zap.String("media_id", testimonial.MediaID))
	return testimonial, l.finish("create", nil)
}

// Update merges the supplied fields into the testimonial. A new video
// replaces the old one, which is removed only after the record is stored.
func (l *Testimonials) Update(ctx context.Context, id string, in TestimonialInput) (*model.Testimonial, error) {
	existing, err := l.repo.FindByID(ctx, id)
	if err != nil {
		mediastore.Discard(in.StagedFile)
		return nil, l.finish("update", loadError(err, testimonialEntity))
	}

	patch := repository.TestimonialPatch{
		Name:        trimmed(in.Name),
		Designation: trimmed(in.Designation),
	}

	merged := *existing
	patch.Apply(&merged)
	if verr := merged.Validate(); verr != nil {
		mediastore.Discard(in.StagedFile)
		return nil, l.finish("update", persistenceError(testimonialEntity, "updating", verr))
	}

	oldMediaID := existing.MediaID
	var newMediaID string
	if in.StagedFile != "" {
		asset, uerr := l.upload(ctx, in.StagedFile, "Server error: Failed to upload new video.")
		if uerr != nil {
			return nil, l.finish("update", uerr)
		}
		newMediaID = asset.MediaID
		patch.MediaID = &asset.MediaID
		patch.VideoURL = &asset.URL
	}

	updated, err := l.repo.Update(ctx, id, patch)
	if err != nil {
		l.log.Error("Failed to update testimonial", zap.String("id", id), zap.Error(err))
		l.compensate(ctx, reasonUpdateFailed, newMediaID)
		return nil, l.finish("update", persistenceError(testimonialEntity, "updating", err))
	}

	if newMediaID != "" && oldMediaID != newMediaID {
		l.compensate(ctx, reasonReplaced, oldMediaID)
	}

	l.invalidate(ctx)
	l.log.Info("Testimonial updated",
		zap.String("id", id),
		zap.Bool("media_replaced", newMediaID != ""))
	return updated, l.finish("update", nil)
}

// Delete removes the testimonial video, best-effort, and then the record
func (l *Testimonials) Delete(ctx context.Context, id string) error {
	existing, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return l.finish("delete", loadError(err, testimonialEntity))
	}

	l.compensate(ctx, reasonDeleted, existing.MediaID)

	if err := l.repo.Delete(ctx, id); err != nil {
		l.log.Error("Failed to delete testimonial", zap.String("id", id), zap.Error(err))
		return l.finish("delete", persistenceError(testimonialEntity, "deleting", err))
	}

	l.invalidate(ctx)
	l.log.Info("Testimonial deleted", zap.String("id", id))
	return l.finish("delete", nil)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
