package usecase

import (
	"context"
	"errors"

	"gift-suggest-core/internal/domain/entity"
	"gift-suggest-core/internal/domain/repository"

	"go.uber.org/zap"
)

type ContextAggregator struct {
	people    repository.PersonReader
	gifts     repository.GiftHistoryReader
	occasions repository.OccasionLookup
	logger    *zap.Logger
}

func NewContextAggregator(people repository.PersonReader, gifts repository.GiftHistoryReader, occasions repository.OccasionLookup, logger *zap.Logger) *ContextAggregator {
	return &ContextAggregator{
		people:    people,
		gifts:     gifts,
		occasions: occasions,
		logger:    logger.Named("aggregator"),
	}
}

// Aggregate resolves the person, the occasion and the recent gift history.
// Only the history lookup is allowed to fail without failing the call.
func (a *ContextAggregator) Aggregate(ctx context.Context, principal *entity.Principal, req entity.SuggestionRequest) (*entity.SuggestionContext, error) {
	if principal == nil || principal.UserID == "" {
		return nil, entity.ErrUnauthenticated
	}

	person, err := a.people.GetPerson(ctx, principal.UserID, req.PersonID)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, entity.NewNotFoundError(entity.EntityPerson)
		}
		return nil, &entity.Error{Kind: entity.ErrInternalServer, Detail: "person lookup", Cause: err}
	}
	if person == nil {
		return nil, entity.NewNotFoundError(entity.EntityPerson)
	}

	occasion, ok := a.occasions.FindOccasion(req.OccasionID)
	if !ok {
		return nil, entity.NewNotFoundError(entity.EntityOccasion)
	}

	return &entity.SuggestionContext{
		Person:   *person,
		Occasion: occasion,
		History:  a.history(ctx, principal.UserID, req.PersonID),
	}, nil
}

func (a *ContextAggregator) history(ctx context.Context, userID, personID string) entity.HistoryResult {
	items, err := a.gifts.RecentGifts(ctx, userID, personID, entity.HistoryLimit)
	if err != nil {
		a.logger.Warn("gift history unavailable, continuing without it",
			zap.String("person_id", personID),
			zap.Error(err))
		return entity.HistoryResult{FetchErr: err}
	}
	if len(items) > entity.HistoryLimit {
		items = items[:entity.HistoryLimit]
	}
	return entity.HistoryResult{Items: items}
}
