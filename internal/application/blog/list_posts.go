package blog

import (
	"context"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ListPosts returns posts newest first.
type ListPosts struct {
	posts ports.PostRepository
}

func NewListPosts(posts ports.PostRepository) *ListPosts {
	return &ListPosts{posts: posts}
}

func (uc *ListPosts) Execute(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return uc.posts.List(ctx, limit, offset)
}
