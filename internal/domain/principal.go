package domain

import (
	"context"

	"parley-server/services/chat-api/internal/utils/platformerrors"
)

// Principal captures the normalized caller identity resolved from the
// bearer token. ID is the identity provider subject and is the value
// every owned row is scoped to.
type Principal struct {
	ID       string
	Issuer   string
	Username string
	Email    string
	Name     string
}

type principalContextKey struct{}

// WithPrincipal stores the principal on the context.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}

// ResolveCurrentUser returns the current user id or an UNAUTHORIZED
// error when no session exists. Every owned write path calls this
// first and propagates the failure unchanged.
func ResolveCurrentUser(ctx context.Context) (string, error) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok || principal.ID == "" {
		return "", platformerrors.NewError(
			ctx,
			platformerrors.LayerDomain,
			platformerrors.ErrorTypeUnauthorized,
			"no authenticated user",
			nil,
			"resolve-current-user-unauthenticated",
		)
	}
	return principal.ID, nil
}
