package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID       uuid.UUID
	Role         string
	SessionToken uuid.UUID
	OTPVerified  bool
}

func SetPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal returns nil when the request carries no session.
func GetPrincipal(ctx context.Context) *Principal {
	p, ok := ctx.Value(principalKey).(*Principal)
	if !ok {
		return nil
	}
	return p
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	p := GetPrincipal(ctx)
	if p == nil || p.UserID == uuid.Nil {
		return uuid.Nil, false
	}
	return p.UserID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	p := GetPrincipal(ctx)
	if p == nil {
		return "", false
	}
	return p.Role, true
}
