package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

// SeedAdmin ensures the privileged account exists in the store. The admin
// authenticates through the normal password path; only the passphrase check
// is skipped for it. Run once at startup, before the server accepts traffic.
type SeedAdmin struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
}

func NewSeedAdmin(users ports.UserRepository, hasher ports.PasswordHasher) *SeedAdmin {
	return &SeedAdmin{users: users, hasher: hasher}
}

func (uc *SeedAdmin) Execute(ctx context.Context, password string) error {
	existing, err := uc.users.GetByEmail(ctx, domain.ReservedAdminEmail)
	if err != nil {
		return fmt.Errorf("look up admin account: %w", err)
	}
	if existing != nil {
		return nil
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	now := time.Now()
	admin := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Name:         "Zamanix Admin",
		Email:        domain.ReservedAdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, admin); err != nil {
		// Another instance seeded it first.
		if errors.Is(err, domerrors.ErrEmailTaken) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}
	return nil
}
