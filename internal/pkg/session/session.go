// Package session carries the authenticated user through a request context.
package session

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when no user is attached to the context.
var ErrUnauthenticated = errors.New("no authenticated user")

type userKey struct{}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID extracts the user attached by WithUserID.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userKey{}).(string)
	return id, ok && id != ""
}

// ContextProvider reads the current user from the request context.
type ContextProvider struct{}

// NewContextProvider creates a ContextProvider.
func NewContextProvider() *ContextProvider {
	return &ContextProvider{}
}

// CurrentUserID implements the catalog's SessionProvider.
func (ContextProvider) CurrentUserID(ctx context.Context) (string, error) {
	id, ok := UserID(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	return id, nil
}
