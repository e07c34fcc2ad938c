package api

import (
	"errors"

	"gift-suggest-core/internal/domain/entity"

	"github.com/gofiber/fiber/v2"
)

// BoundaryError is what a caller is told about a failure. Messages are stable
// and never carry the underlying error text.
type BoundaryError struct {
	Status  int
	Kind    string
	Message string
}

const (
	KindValidation        = "validation"
	KindAuth              = "auth"
	KindNotFound          = "not_found"
	KindRateLimited       = "rate_limited"
	KindConfig            = "config"
	KindUpstreamTimeout   = "upstream_timeout"
	KindUpstreamMalformed = "upstream_malformed"
	KindUpstream          = "upstream"
	KindInternal          = "internal"
)

// MapError translates any pipeline error into its boundary form.
func MapError(err error) BoundaryError {
	detail := entity.DetailOf(err)

	switch {
	case errors.Is(err, entity.ErrValidation):
		msg := "invalid request"
		if detail != "" {
			msg += ": " + detail
		}
		return BoundaryError{fiber.StatusBadRequest, KindValidation, msg}
	case errors.Is(err, entity.ErrUnauthenticated):
		return BoundaryError{fiber.StatusUnauthorized, KindAuth, "Not authenticated"}
	case errors.Is(err, entity.ErrNotFound):
		return BoundaryError{fiber.StatusNotFound, KindNotFound, notFoundMessage(detail)}
	case errors.Is(err, entity.ErrRateLimitExceeded):
		return BoundaryError{fiber.StatusTooManyRequests, KindRateLimited, "Rate limit exceeded"}
	case errors.Is(err, entity.ErrConfig):
		return BoundaryError{fiber.StatusInternalServerError, KindConfig, "AI backend not configured"}
	case errors.Is(err, entity.ErrUpstreamTimeout):
		return BoundaryError{fiber.StatusGatewayTimeout, KindUpstreamTimeout, "AI request timed out"}
	case errors.Is(err, entity.ErrUpstreamMalformed):
		return BoundaryError{fiber.StatusBadGateway, KindUpstreamMalformed, malformedMessage(detail)}
	case errors.Is(err, entity.ErrUpstream):
		return BoundaryError{fiber.StatusBadGateway, KindUpstream, "AI request failed"}
	case errors.Is(err, entity.ErrInternalServer):
		return BoundaryError{fiber.StatusInternalServerError, KindInternal, "Internal server error"}
	default:
		return BoundaryError{fiber.StatusInternalServerError, KindInternal, "Internal server error"}
	}
}

func notFoundMessage(entityName string) string {
	switch entityName {
	case entity.EntityPerson:
		return "Person not found"
	case entity.EntityOccasion:
		return "Occasion not found"
	default:
		return "Not found"
	}
}

func malformedMessage(reason string) string {
	switch reason {
	case entity.MalformedEmpty:
		return "Empty AI response"
	case entity.MalformedSyntax:
		return "AI response not valid JSON"
	default:
		return "AI response violates schema"
	}
}
