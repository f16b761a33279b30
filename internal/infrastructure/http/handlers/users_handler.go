package handlers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/auth"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/middleware"
)

// UsersHandler serves GET /api/users/profile. Requires bearer auth.
type UsersHandler struct {
	profile *auth.Profile
}

func NewUsersHandler(profile *auth.Profile) *UsersHandler {
	return &UsersHandler{profile: profile}
}

// Profile returns the current user from the token. Requires AuthValidator middleware.
func (h *UsersHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userIDStr, _ := middleware.AuthFromContext(r.Context())
	if userIDStr == "" {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return
	}
	user, err := h.profile.Execute(r.Context(), domain.NewUserID(userID))
	if err != nil {
		if errors.Is(err, domerrors.ErrUserNotFound) {
			writeErr(w, http.StatusNotFound, "", err.Error())
			return
		}
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeData(w, http.StatusOK, summarize(user))
}
