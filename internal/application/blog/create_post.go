package blog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
)

type CreatePostInput struct {
	AuthorID domain.UserID
	Title    string
	Body     string
	ImageURL string
}

// CreatePost stores a new blog post for the authenticated author.
type CreatePost struct {
	posts ports.PostRepository
}

func NewCreatePost(posts ports.PostRepository) *CreatePost {
	return &CreatePost{posts: posts}
}

func (uc *CreatePost) Execute(ctx context.Context, input CreatePostInput) (*domain.Post, error) {
	now := time.Now()
	post := &domain.Post{
		ID:        domain.NewPostID(uuid.New()),
		AuthorID:  input.AuthorID,
		Title:     strings.TrimSpace(input.Title),
		Body:      input.Body,
		ImageURL:  strings.TrimSpace(input.ImageURL),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}
