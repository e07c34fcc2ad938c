package usecase

import (
	"context"
	"fmt"
	"time"

	"gift-suggest-core/internal/domain/entity"
	"gift-suggest-core/internal/domain/repository"
	"gift-suggest-core/internal/metrics"

	"go.uber.org/zap"
)

const usageUpdateTimeout = 5 * time.Second

type Orchestrator struct {
	aggregator *ContextAggregator
	invoker    *ModelInvoker
	limiter    repository.UsageLimiter // optional
	logger     *zap.Logger
}

func NewOrchestrator(aggregator *ContextAggregator, invoker *ModelInvoker, limiter repository.UsageLimiter, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		aggregator: aggregator,
		invoker:    invoker,
		limiter:    limiter,
		logger:     logger.Named("orchestrator"),
	}
}

// Execute runs one suggestion request end to end. Every stage depends on the
// previous one, so the stages run strictly in order and the first failure ends the call.
func (u *Orchestrator) Execute(ctx context.Context, principal *entity.Principal, req entity.SuggestionRequest) (entity.SuggestionSet, error) {
	var none entity.SuggestionSet

	// 1. Person, occasion and gift history
	sc, err := u.aggregator.Aggregate(ctx, principal, req)
	if err != nil {
		return none, err
	}
	if sc.History.Degraded() {
		metrics.HistoryDegradedTotal.Inc()
	}

	// 2. Check the caller's token quota before paying for a model call
	if err := u.checkLimit(ctx, principal.UserID); err != nil {
		return none, err
	}

	// 3. Render the prompt
	prompt := BuildPrompt(req, sc.Person, sc.Occasion.Name, sc.History.Items)

	// 4. One bounded call to the backend
	resp, err := u.invoker.Invoke(ctx, prompt)
	if err != nil {
		return none, err
	}

	// Tokens were spent even if the answer turns out to be unusable.
	u.recordUsage(principal.UserID, resp.TokenCount)

	// 5. Trust nothing the model said until it passes the contract
	set, err := ParseSuggestions(resp.Text)
	if err != nil {
		u.logger.Warn("generation output rejected",
			zap.String("response_id", resp.ResponseID),
			zap.Error(err))
		return none, err
	}

	return set, nil
}

func (u *Orchestrator) checkLimit(ctx context.Context, userID string) error {
	if u.limiter == nil {
		return nil
	}
	allowed, err := u.limiter.CheckLimit(ctx, userID)
	if err != nil {
		// Quota storage being down must not take suggestions down with it.
		u.logger.Warn("usage limiter unavailable, allowing request", zap.Error(err))
		return nil
	}
	if !allowed {
		return fmt.Errorf("user %s: %w", userID, entity.ErrRateLimitExceeded)
	}
	return nil
}

func (u *Orchestrator) recordUsage(userID string, tokens int) {
	if u.limiter == nil || tokens <= 0 {
		return
	}
	go func() {
		// The request context may already be gone when this runs.
		bgCtx, cancel := context.WithTimeout(context.Background(), usageUpdateTimeout)
		defer cancel()
		if err := u.limiter.Increment(bgCtx, userID, tokens); err != nil {
			u.logger.Warn("failed to record token usage",
				zap.String("user_id", userID),
				zap.Error(err))
		}
	}()
}
