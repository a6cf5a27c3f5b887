package repository

import (
	"context"

	"hooplogs/workout-service/internal/domain"
)

var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// WorkoutPlanRepository is the authoritative remote store for workout plan
// documents, one document per user. Remote state wins on conflict; callers
// degrade to the cache tier when it is unavailable.
type WorkoutPlanRepository interface {
	Get(ctx context.Context, userID string) (*domain.WorkoutPlanDocument, error)
	// Set replaces (or creates) the user's full document.
	Set(ctx context.Context, doc *domain.WorkoutPlanDocument) error
	// UpdateFields applies a partial update, creating the document if
	// absent. Values must be bson-encodable.
	UpdateFields(ctx context.Context, userID string, fields map[string]any) error
}
