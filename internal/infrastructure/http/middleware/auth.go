package middleware

import (
	"net/http"
	"strings"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
)

// AuthValidator validates the bearer token and sets user id and role in the
// context (see AuthFromContext).
type AuthValidator struct {
	issuer ports.TokenIssuer
}

func NewAuthValidator(issuer ports.TokenIssuer) *AuthValidator {
	return &AuthValidator{issuer: issuer}
}

func (m *AuthValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeUnauthorized(w, "missing or invalid authorization")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")
		userID, role, err := m.issuer.Validate(tokenString)
		if err != nil {
			writeUnauthorized(w, "invalid token")
			return
		}
		ctx := WithAuth(r.Context(), userID, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":"error","message":"` + message + `"}`))
}
