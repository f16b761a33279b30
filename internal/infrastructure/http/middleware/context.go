package middleware

import "context"

type contextKey string

const authContextKey contextKey = "auth"

type authInfo struct {
	userID string
	role   string
}

// WithAuth injects the authenticated user id and role into the context.
func WithAuth(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, authContextKey, authInfo{userID: userID, role: role})
}

// AuthFromContext returns the authenticated user id and role, or empty strings.
func AuthFromContext(ctx context.Context) (userID, role string) {
	v := ctx.Value(authContextKey)
	if v == nil {
		return "", ""
	}
	a, _ := v.(authInfo)
	return a.userID, a.role
}
