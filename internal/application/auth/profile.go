package auth

import (
	"context"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

// Profile loads the account behind a validated token.
type Profile struct {
	users ports.UserRepository
}

func NewProfile(users ports.UserRepository) *Profile {
	return &Profile{users: users}
}

func (uc *Profile) Execute(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domerrors.ErrUserNotFound
	}
	return user, nil
}
