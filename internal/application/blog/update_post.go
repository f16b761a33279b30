package blog

import (
	"context"
	"strings"
	"time"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

type UpdatePostInput struct {
	PostID    domain.PostID
	ActorID   domain.UserID
	ActorRole string
	Title     string
	Body      string
	ImageURL  string
}

// UpdatePost rewrites a post. Only the author or an admin may update.
type UpdatePost struct {
	posts ports.PostRepository
}

func NewUpdatePost(posts ports.PostRepository) *UpdatePost {
	return &UpdatePost{posts: posts}
}

func (uc *UpdatePost) Execute(ctx context.Context, input UpdatePostInput) (*domain.Post, error) {
	post, err := uc.posts.GetByID(ctx, input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domerrors.ErrPostNotFound
	}
	if post.AuthorID != input.ActorID && input.ActorRole != domain.RoleAdmin {
		return nil, domerrors.ErrForbidden
	}
	post.Title = strings.TrimSpace(input.Title)
	post.Body = input.Body
	post.ImageURL = strings.TrimSpace(input.ImageURL)
	post.UpdatedAt = time.Now()
	if err := uc.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
