package utils

import (
	"context"

	"bus-booking/internal/data/entity"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

func SetUserContext(ctx context.Context, userID uuid.UUID, username string, role entity.UserRole) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID.String())
	ctx = context.WithValue(ctx, UsernameKey, username)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return uuid.Nil, false
	}

	userIDStr, ok := userIDVal.(string)
	if !ok {
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

func GetUsernameFromContext(ctx context.Context) (string, bool) {
	usernameVal := ctx.Value(UsernameKey)
	if usernameVal == nil {
		return "", false
	}

	username, ok := usernameVal.(string)
	return username, ok
}

// GetRoleFromContext returns the caller's role as the typed enum; handlers
// never see the raw claim string.
func GetRoleFromContext(ctx context.Context) (entity.UserRole, bool) {
	roleVal := ctx.Value(RoleKey)
	if roleVal == nil {
		return "", false
	}

	role, ok := roleVal.(entity.UserRole)
	return role, ok
}
