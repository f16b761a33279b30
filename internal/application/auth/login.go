package auth

import (
	"context"
	"strings"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

// DefaultTokenExpiry is the access token lifetime in seconds when config
// leaves it unset.
const DefaultTokenExpiry = 86400 // 24h

type LoginInput struct {
	Email    string
	Password string
	// Passphrase is the optional secondary factor. When empty the check is
	// skipped and login succeeds on password alone.
	Passphrase string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Login verifies password and, when supplied, the passphrase, then issues a
// token bound to the user's id. Admin accounts never go through the
// passphrase check.
type Login struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   ports.TokenIssuer
	lockout  ports.LoginLockoutStore
	tokenExp int64
}

func NewLogin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer, lockout ports.LoginLockoutStore, tokenExp int64) *Login {
	if tokenExp <= 0 {
		tokenExp = DefaultTokenExpiry
	}
	return &Login{
		users:    users,
		hasher:   hasher,
		issuer:   issuer,
		lockout:  lockout,
		tokenExp: tokenExp,
	}
}

func (uc *Login) Execute(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if uc.lockout != nil {
		if locked, _ := uc.lockout.IsLocked(ctx, email); locked {
			return nil, domerrors.ErrAccountLocked
		}
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password share one error value so the
	// response cannot reveal which part was wrong.
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		uc.recordFailure(ctx, email)
		return nil, domerrors.ErrInvalidCredentials
	}
	if input.Passphrase != "" && !user.IsAdmin() {
		if !uc.hasher.Verify(input.Passphrase, user.PassphraseHash) {
			uc.recordFailure(ctx, email)
			return nil, domerrors.ErrInvalidPassphrase
		}
	}
	if uc.lockout != nil {
		uc.lockout.RecordSuccess(ctx, email)
	}
	token, err := uc.issuer.Issue(user.ID.String(), user.Role, uc.tokenExp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (uc *Login) recordFailure(ctx context.Context, email string) {
	if uc.lockout != nil {
		uc.lockout.RecordFailure(ctx, email)
	}
}
