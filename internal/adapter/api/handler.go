package api

import (
	"context"

	"gift-suggest-core/internal/domain/entity"
	"gift-suggest-core/internal/metrics"
	"gift-suggest-core/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Suggester is the suggestion pipeline as seen by the handler.
type Suggester interface {
	Execute(ctx context.Context, principal *entity.Principal, req entity.SuggestionRequest) (entity.SuggestionSet, error)
}

type SuggestionHandler struct {
	suggester Suggester
	logger    *zap.Logger
}

func NewSuggestionHandler(s Suggester, logger *zap.Logger) *SuggestionHandler {
	return &SuggestionHandler{suggester: s, logger: logger.Named("api")}
}

// Response field names follow what the web client reads (why, price_hint,
// link_query), not the backend schema (reason, priceHint).
type suggestionDTO struct {
	Title     string `json:"title"`
	Why       string `json:"why"`
	Category  string `json:"category"`
	PriceHint string `json:"price_hint"`
	LinkQuery string `json:"link_query,omitempty"`
}

type suggestionsResponse struct {
	Suggestions []suggestionDTO `json:"suggestions"`
}

func toResponse(set entity.SuggestionSet) suggestionsResponse {
	out := suggestionsResponse{Suggestions: make([]suggestionDTO, 0, len(set))}
	for _, s := range set {
		out.Suggestions = append(out.Suggestions, suggestionDTO{
			Title:     s.Title,
			Why:       s.Reason,
			Category:  s.Category,
			PriceHint: s.PriceHint,
			LinkQuery: s.LinkQuery,
		})
	}
	return out
}

func (h *SuggestionHandler) HandleSuggest(c *fiber.Ctx) error {
	req, err := usecase.DecodeRequest(c.Body())
	if err != nil {
		return h.fail(c, err)
	}

	set, err := h.suggester.Execute(c.UserContext(), PrincipalFrom(c), req)
	if err != nil {
		return h.fail(c, err)
	}

	metrics.RequestsTotal.WithLabelValues("ok").Inc()
	return c.Status(fiber.StatusOK).JSON(toResponse(set))
}

// The delivery layer is the only place errors become status codes.
func (h *SuggestionHandler) fail(c *fiber.Ctx, err error) error {
	be := MapError(err)
	metrics.RequestsTotal.WithLabelValues(be.Kind).Inc()

	if be.Status >= fiber.StatusInternalServerError {
		h.logger.Error("suggestion request failed",
			zap.String("kind", be.Kind),
			zap.Int("status", be.Status),
			zap.Error(err))
	} else {
		h.logger.Info("suggestion request rejected",
			zap.String("kind", be.Kind),
			zap.Int("status", be.Status),
			zap.Error(err))
	}

	return c.Status(be.Status).JSON(fiber.Map{"error": be.Message, "kind": be.Kind})
}
