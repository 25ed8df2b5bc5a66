package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/johnquangdev/weg-assembly/errors"
	"github.com/johnquangdev/weg-assembly/internal/domain/entities"
	"github.com/johnquangdev/weg-assembly/pkg/jwt"
)

// Context keys set by EchoAuth
const (
	UserKey   = "user"
	UserIDKey = "user_id"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// UserStore loads the account behind a token
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	TouchActivity(ctx context.Context, id uuid.UUID) error
}

// EchoAuth returns an Echo middleware that validates the bearer JWT and sets
// "user_id" (uuid.UUID) and "user" (*entities.User) into Echo context
func EchoAuth(tokens TokenValidator, users UserStore, logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return apperrors.ErrUnauthenticated()
			}

			claims, err := tokens.ValidateAccessToken(token)
			if err != nil {
				return apperrors.ErrInvalidToken()
			}

			ctx := c.Request().Context()
			user, err := users.FindByID(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrInvalidToken()
				}
				return apperrors.ErrInternal(err)
			}
			if !user.IsActive {
				return apperrors.ErrInvalidToken()
			}

			if err := users.TouchActivity(ctx, user.ID); err != nil {
				logger.Warn("failed to touch user activity", zap.String("user_id", user.ID.String()), zap.Error(err))
			}

			c.Set(UserKey, user)
			c.Set(UserIDKey, user.ID)

			return next(c)
		}
	}
}

// GetUserID returns the authenticated caller set by EchoAuth
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetUser returns the authenticated account set by EchoAuth
func GetUser(c echo.Context) (*entities.User, bool) {
	user, ok := c.Get(UserKey).(*entities.User)
	return user, ok
}

// extractToken reads the Authorization header, falling back to the access_token cookie
func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
