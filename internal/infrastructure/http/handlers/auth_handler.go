package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/auth"
	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register *auth.Register
	login    *auth.Login
	emitter  ports.WebhookEmitter
	validate *validator.Validate
	log      zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, emitter ports.WebhookEmitter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register: register,
		login:    login,
		emitter:  emitter,
		validate: validator.New(),
		log:      log,
	}
}

// userSummary is the identity payload inside data. Mongo-era "_id" key kept
// for the existing client.
type userSummary struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func summarize(u *domain.User) userSummary {
	return userSummary{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// Register handles POST /api/users/register. The registration contract
// reports every rejection as 400 with the underlying message.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Phone    string `json:"phone" validate:"max=20"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Name:     body.Name,
		Email:    email,
		Phone:    body.Phone,
		Password: password,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.register", "", false, err.Error())
		middleware.RecordAuthAttempt("register", false)
		switch {
		case errors.Is(err, domerrors.ErrReservedEmail):
			writeErr(w, http.StatusBadRequest, ErrCodeReservedEmail, err.Error())
		case errors.Is(err, domerrors.ErrEmailTaken):
			writeErr(w, http.StatusBadRequest, ErrCodeEmailTaken, err.Error())
		case errors.Is(err, domerrors.ErrInvalidCredentials):
			writeErr(w, http.StatusBadRequest, "", err.Error())
		default:
			h.log.Error().Err(err).Msg("register failed")
			writeErr(w, http.StatusBadRequest, "", "registration failed: "+err.Error())
		}
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.register", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("register", true)
	// Only disclosure of the plaintext passphrase; it is stored hashed.
	writeMessage(w, http.StatusCreated, "account created, save your passphrase", struct {
		userSummary
		Passphrase string `json:"passphrase"`
		Token      string `json:"token"`
	}{
		userSummary: summarize(result.User),
		Passphrase:  result.Passphrase,
		Token:       result.Token,
	})
}

// Login handles POST /api/users/login. Credential rejections are 401 and
// deliberately generic; unexpected failures are 500 so clients can tell
// "try again" from "wrong password".
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email      string `json:"email" validate:"required,email,max=254"`
		Password   string `json:"password" validate:"required,max=128"`
		Passphrase string `json:"passphrase" validate:"max=512"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "", "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:      email,
		Password:   password,
		Passphrase: body.Passphrase,
	})
	if err != nil {
		AuditEmit(h.log, r, h.emitter, "user.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		switch {
		case errors.Is(err, domerrors.ErrInvalidCredentials):
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
		case errors.Is(err, domerrors.ErrInvalidPassphrase):
			writeErr(w, http.StatusUnauthorized, ErrCodeInvalidPassphrase, err.Error())
		case errors.Is(err, domerrors.ErrAccountLocked):
			writeErr(w, http.StatusTooManyRequests, ErrCodeAccountLocked, err.Error())
		default:
			h.log.Error().Err(err).Msg("login failed")
			writeErr(w, http.StatusInternalServerError, "", "internal error")
		}
		return
	}
	AuditEmit(h.log, r, h.emitter, "user.login", result.User.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	writeData(w, http.StatusOK, struct {
		userSummary
		Token string `json:"token"`
	}{
		userSummary: summarize(result.User),
		Token:       result.Token,
	})
}
