package auth

import (
	"context"
	"strings"

	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

// --- in-memory fakes for ports ---

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[string]*domain.User

	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*domain.User),
		byID:    make(map[string]*domain.User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domerrors.ErrEmailTaken
	}
	f.byEmail[u.Email] = u
	f.byID[u.ID.String()] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byEmail[email], nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.byID[id.String()], nil
}

// fakeHasher prefixes instead of hashing so tests can assert on stored values.
type fakeHasher struct{}

func (fakeHasher) Hash(secret string) (string, error) { return "h:" + secret, nil }
func (fakeHasher) Verify(secret, hash string) bool    { return hash == "h:"+secret }

type fakeGenerator struct {
	phrase string
}

func (g fakeGenerator) Generate() (string, error) {
	if g.phrase != "" {
		return g.phrase, nil
	}
	return strings.TrimSpace(strings.Repeat("word ", 24)), nil
}

type fakeIssuer struct {
	err error
}

func (i fakeIssuer) Issue(userID, role string, _ int64) (string, error) {
	if i.err != nil {
		return "", i.err
	}
	return "token:" + userID + ":" + role, nil
}

func (i fakeIssuer) Validate(token string) (string, string, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 || parts[0] != "token" {
		return "", "", domerrors.ErrInvalidCredentials
	}
	return parts[1], parts[2], nil
}
