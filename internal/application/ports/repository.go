package ports

import (
	"context"

	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
)

// UserRepository defines persistence for user accounts. Create returns
// domain/errors.ErrEmailTaken when the store's uniqueness constraint fires;
// that constraint is the sole guard against concurrent registrations with the
// same email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error)
}

// PostRepository defines persistence for blog posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, postID domain.PostID) (*domain.Post, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, postID domain.PostID) error
}
