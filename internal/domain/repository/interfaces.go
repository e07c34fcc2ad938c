package repository

import (
	"context"

	"gift-suggest-core/internal/domain/entity"
)

// PersonReader returns entity.ErrNotFound when the person does not exist
// or belongs to another user.
type PersonReader interface {
	GetPerson(ctx context.Context, userID, personID string) (*entity.PersonContext, error)
}

// GiftHistoryReader lists a person's gifts newest first, at most limit items.
type GiftHistoryReader interface {
	RecentGifts(ctx context.Context, userID, personID string, limit int) ([]entity.GiftHistoryItem, error)
}

type OccasionLookup interface {
	FindOccasion(id int) (entity.Occasion, bool)
}

// Generator is a schema-constrained text generation backend.
type Generator interface {
	// CheckCredentials reports entity.ErrConfig when the backend cannot be called at all.
	CheckCredentials() error
	Generate(ctx context.Context, req entity.GenerationRequest) (*entity.ModelResponse, error)
	Name() string
}

type UsageLimiter interface {
	CheckLimit(ctx context.Context, userID string) (bool, error)
	Increment(ctx context.Context, userID string, tokens int) error
}
