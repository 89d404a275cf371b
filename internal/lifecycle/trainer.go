package lifecycle

import (
	"context"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/internal/repository"
	"github.com/Ujjwal3492/Fitness/pkg/cache"
	"github.com/Ujjwal3492/Fitness/pkg/mediastore"
	"go.uber.org/zap"
)

const trainerEntity = "Trainer"

// TrainerRepository is the storage the trainer lifecycle writes to
type TrainerRepository interface {
	Create(ctx context.Context, trainer *model.Trainer) error
	FindByID(ctx context.Context, id string) (*model.Trainer, error)
	Update(ctx context.Context, id string, patch repository.TrainerPatch) (*model.Trainer, error)
	Delete(ctx context.Context, id string) error
}

// TrainerInput carries the fields of a create or update request. Nil
// fields were not supplied. StagedFile is the local path of an uploaded
// profile picture, empty when none was sent; the lifecycle owns the file.
type TrainerInput struct {
	FullName        *string
	Location        *string
	Experience      *string
	Philosophy      *string
	Specializations *model.StringList
	Qualifications  *model.StringList
	CorePrinciples  *model.StringList
	Services        *model.StringList
	StagedFile      string
}

func (in *TrainerInput) patch() repository.TrainerPatch {
	return repository.TrainerPatch{
		FullName:        trimmed(in.FullName),
		Location:        in.Location,
		Experience:      in.Experience,
		Philosophy:      in.Philosophy,
		Specializations: in.Specializations,
		Qualifications:  in.Qualifications,
		CorePrinciples:  in.CorePrinciples,
		Services:        in.Services,
	}
}

// Trainers runs the upload-commit lifecycle for trainer records
type Trainers struct {
	base
	repo TrainerRepository
}

// NewTrainers creates the trainer lifecycle
func NewTrainers(repo TrainerRepository, opts Options) *Trainers {
	return &Trainers{
		base: newBase("trainer", cache.KeyTrainers, opts),
		repo: repo,
	}
}

// Create validates the input, uploads the optional profile picture and
// stores the trainer.
func (l *Trainers) Create(ctx context.Context, in TrainerInput) (*model.Trainer, error) {
	trainer := &model.Trainer{}
	patch := in.patch()
	patch.Apply(trainer)

	if isBlank(in.FullName) {
		mediastore.Discard(in.StagedFile)
		verr := &model.ValidationError{}
		verr.Add("fullName", "Trainer full name is required.")
		return nil, l.finish("create", validationError(verr))
	}

	if in.StagedFile != "" {
		asset, uerr := l.upload(ctx, in.StagedFile, "Image upload failed")
		if uerr != nil {
			return nil, l.finish("create", uerr)
		}
		trainer.MediaID = asset.MediaID
		trainer.ProfilePicture = asset.URL
	}

	if err := l.repo.Create(ctx, trainer); err != nil {
		l.log.Error("Failed to store trainer", zap.Error(err))
		l.compensate(ctx, reasonCreateFailed, trainer.MediaID)
		return nil, l.finish("create", persistenceError(trainerEntity, "creating", err))
	}

	l.invalidate(ctx)
	l.log.Info("Trainer created",
		zap.String("id", trainer.ID),
		zap.Bool("has_media", trainer.HasMedia()))
	return trainer, l.finish("create", nil)
}

// Update merges the supplied fields into the trainer. A new profile picture
// replaces the old one, which is removed only after the record is stored.
func (l *Trainers) Update(ctx context.Context, id string, in TrainerInput) (*model.Trainer, error) {
	existing, err := l.repo.FindByID(ctx, id)
	if err != nil {
		mediastore.Discard(in.StagedFile)
		return nil, l.finish("update", loadError(err, trainerEntity))
	}

	patch := in.patch()

	merged := *existing
	patch.Apply(&merged)
	if verr := merged.Validate(); verr != nil {
		mediastore.Discard(in.StagedFile)
		return nil, l.finish("update", persistenceError(trainerEntity, "updating", verr))
	}

	oldMediaID := existing.MediaID
	var newMediaID string
	if in.StagedFile != "" {
		asset, uerr := l.upload(ctx, in.StagedFile, "Image upload failed")
		if uerr != nil {
			return nil, l.finish("update", uerr)
		}
		newMediaID = asset.MediaID
		patch.MediaID = &asset.MediaID
		patch.ProfilePicture = &asset.URL
	}

	updated, err := l.repo.Update(ctx, id, patch)
	if err != nil {
		l.log.Error("Failed to update trainer", zap.String("id", id), zap.Error(err))
		l.compensate(ctx, reasonUpdateFailed, newMediaID)
		return nil, l.finish("update", persistenceError(trainerEntity, "updating", err))
	}

	if newMediaID != "" && oldMediaID != newMediaID {
		l.compensate(ctx, reasonReplaced, oldMediaID)
	}

	l.invalidate(ctx)
	l.log.Info("Trainer updated",
		zap.String("id", id),
		zap.Bool("media_replaced", newMediaID != ""))
	return updated, l.finish("update", nil)
}

// Delete removes the trainer's profile picture, best-effort, and then the
// record itself.
func (l *Trainers) Delete(ctx context.Context, id string) error {
	existing, err := l.repo.FindByID(ctx, id)
	if err != nil {
		return l.finish("delete", loadError(err, trainerEntity))
	}

	l.compensate(ctx, reasonDeleted, existing.MediaID)

	if err := l.repo.Delete(ctx, id); err != nil {
		l.log.Error("Failed to delete trainer", zap.String("id", id), zap.Error(err))
		return l.finish("delete", persistenceError(trainerEntity, "deleting", err))
	}

	l.invalidate(ctx)
	l.log.Info("Trainer deleted", zap.String("id", id))
	return l.finish("delete", nil)
}
