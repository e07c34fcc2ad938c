package api

import (
	"strings"

	"gift-suggest-core/internal/domain/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const principalKey = "principal"

// NewAuthMiddleware attaches the caller to the request when a valid HS256
// bearer token is present. It never rejects: anonymous requests continue and
// the suggestion pipeline decides when a caller is required, after the body
// has been validated.
func NewAuthMiddleware(secret []byte, logger *zap.Logger) fiber.Handler {
	logger = logger.Named("auth")
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" || len(secret) == 0 {
			return c.Next()
		}

		claims := &jwt.RegisteredClaims{}
		_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
		if err != nil {
			logger.Debug("ignoring invalid bearer token", zap.Error(err))
			return c.Next()
		}

		// Records are keyed by UUID user ids.
		if _, err := uuid.Parse(claims.Subject); err != nil {
			logger.Debug("ignoring token with non-UUID subject")
			return c.Next()
		}

		c.Locals(principalKey, &entity.Principal{UserID: claims.Subject})
		return c.Next()
	}
}

// PrincipalFrom returns the authenticated caller, or nil.
func PrincipalFrom(c *fiber.Ctx) *entity.Principal {
	p, _ := c.Locals(principalKey).(*entity.Principal)
	return p
}
