package auth

import "context"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// userIDKey is the context key for the authenticated user ID.
const userIDKey contextKey = "user_id"

// ContextWithUserID returns a context carrying the authenticated user ID.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext retrieves the authenticated user ID from the context.
// Returns empty string if the request is not authenticated.
func UserIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return ""
	}
	return id
}

// MustUserIDFromContext retrieves the authenticated user ID from the context.
// Panics if not present (use only behind the auth middleware).
func MustUserIDFromContext(ctx context.Context) string {
	id := UserIDFromContext(ctx)
	if id == "" {
		panic("user id not found in context - ensure auth middleware is applied")
	}
	return id
}
