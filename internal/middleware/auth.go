package middleware

import (
	"context"
	"errors"
	"strings"

	"resellution-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const userIDLocal = "user_id"

var errUnknownToken = errors.New("unknown token")

// TokenVerifier resolves an opaque bearer token to a user id. The token is
// issued by the external auth service; this API only verifies it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// RedisTokenVerifier looks tokens up under "token:<token>"; the auth
// service writes those keys at login.
type RedisTokenVerifier struct {
	Rdb *redis.Client
}

func (v *RedisTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	userID, err := v.Rdb.Get(ctx, "token:"+token).Result()
	if err == redis.Nil {
		return "", errUnknownToken
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// StaticTokenVerifier accepts any non-empty token and maps it to a fixed
// user id. Used in local/simulated mode and tests.
type StaticTokenVerifier struct {
	UserID string
}

func (v *StaticTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	return v.UserID, nil
}

// RequireAuth extracts the bearer token, verifies it, and stores the user
// id in Locals. Missing or unverifiable credentials get 401 before any
// handler runs.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return response.Unauthorized(c, "Unauthorized")
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return response.Unauthorized(c, "Unauthorized")
		}
		userID, err := verifier.Verify(c.Context(), parts[1])
		if err != nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		c.Locals(userIDLocal, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id from Locals ("" if none).
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDLocal).(string)
	return id
}
