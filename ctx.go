package auth

import (
	"context"
)

var userCtxKey = &contextKey{"user"}
var sessionCtxKey = &contextKey{"session"}

type contextKey struct {
	name string
}

// WithContext sets the User in the given context
func WithContext(r context.Context, user *User) context.Context {
	return context.WithValue(r, userCtxKey, user)
}

// FromContext finds the user from the context.
func FromContext(ctx context.Context) (*User, bool) {
	raw, ok := ctx.Value(userCtxKey).(*User)
	return raw, ok
}

// WithSessionContext sets the SessionSnapshot in the given context
func WithSessionContext(r context.Context, snap SessionSnapshot) context.Context {
	return context.WithValue(r, sessionCtxKey, snap)
}

// SessionFromContext extracts the SessionSnapshot from the context
func SessionFromContext(ctx context.Context) (SessionSnapshot, bool) {
	raw, ok := ctx.Value(sessionCtxKey).(SessionSnapshot)
	return raw, ok
}
