package lifecycle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Ujjwal3492/Fitness/internal/model"
	"github.com/Ujjwal3492/Fitness/internal/repository"
)

// Kind classifies a failed lifecycle operation
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUpload
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUpload:
		return "upload"
	case KindPersistence:
		return "persistence"
	default:
		return "unknown"
	}
}

// Error is returned by every failed lifecycle operation. Message is safe to
// show to API clients; Fields is set for validation failures.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a lifecycle error, or 0 for any other error
func KindOf(err error) Kind {
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Kind
	}
	return 0
}

func validationError(verr *model.ValidationError) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation failed",
		Fields:  verr.Fields,
		Err:     verr,
	}
}

func notFoundError(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found."}
}

// persistenceError classifies a repository error. Schema violations
// reported by the model hooks are validation failures.
func persistenceError(entity, action string, err error) *Error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return validationError(verr)
	}
	if errors.Is(err, repository.ErrNotFound) {
		return notFoundError(entity)
	}
	return &Error{
		Kind:    KindPersistence,
		Message: fmt.Sprintf("Server error %s %s.", action, strings.ToLower(entity)),
		Err:     err,
	}
}
