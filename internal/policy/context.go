package policy

import (
	"context"

	"github.com/google/uuid"

	"github.com/gabrielmlima/quizhub/internal/auth"
)

// FromContext builds the Principal out of the JWT claims stored by the auth
// middleware. Missing or malformed claims yield ErrUnauthorized.
func FromContext(ctx context.Context) (Principal, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return Principal{}, ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Principal{}, ErrUnauthorized
	}

	return Principal{UserID: userID, Role: Role(claims.Role)}, nil
}
