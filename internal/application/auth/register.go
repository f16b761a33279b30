package auth

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// RegisterResult carries the one-time plaintext passphrase. It is never
// returned again; only its hash is persisted.
type RegisterResult struct {
	User       *domain.User
	Passphrase string
	Token      string
}

// Register creates an account, issues its passphrase, and signs an initial token.
type Register struct {
	users      ports.UserRepository
	hasher     ports.PasswordHasher
	passphrase ports.PassphraseGenerator
	issuer     ports.TokenIssuer
	tokenExp   int64
}

func NewRegister(users ports.UserRepository, hasher ports.PasswordHasher, passphrase ports.PassphraseGenerator, issuer ports.TokenIssuer, tokenExp int64) *Register {
	if tokenExp <= 0 {
		tokenExp = DefaultTokenExpiry
	}
	return &Register{
		users:      users,
		hasher:     hasher,
		passphrase: passphrase,
		issuer:     issuer,
		tokenExp:   tokenExp,
	}
}

func (uc *Register) Execute(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailRegex.MatchString(email) {
		return nil, domerrors.ErrInvalidCredentials
	}
	if email == domain.ReservedAdminEmail {
		return nil, domerrors.ErrReservedEmail
	}
	passwordHash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	phrase, err := uc.passphrase.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate passphrase: %w", err)
	}
	phraseHash, err := uc.hasher.Hash(phrase)
	if err != nil {
		return nil, fmt.Errorf("hash passphrase: %w", err)
	}
	now := time.Now()
	user := &domain.User{
		ID:             domain.NewUserID(uuid.New()),
		Name:           strings.TrimSpace(input.Name),
		Email:          email,
		Phone:          strings.TrimSpace(input.Phone),
		PasswordHash:   passwordHash,
		PassphraseHash: phraseHash,
		Role:           domain.RoleUser,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	// The store's uniqueness constraint decides duplicate emails; no
	// pre-check, so concurrent registrations cannot race past it.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.Issue(user.ID.String(), user.Role, uc.tokenExp)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &RegisterResult{User: user, Passphrase: phrase, Token: token}, nil
}
