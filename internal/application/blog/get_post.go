package blog

import (
	"context"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

// GetPost fetches a single post by id.
type GetPost struct {
	posts ports.PostRepository
}

func NewGetPost(posts ports.PostRepository) *GetPost {
	return &GetPost{posts: posts}
}

func (uc *GetPost) Execute(ctx context.Context, id domain.PostID) (*domain.Post, error) {
	post, err := uc.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domerrors.ErrPostNotFound
	}
	return post, nil
}
