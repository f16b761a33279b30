package blog

import (
	"context"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
)

// DeletePost removes a post. Only the author or an admin may delete.
type DeletePost struct {
	posts ports.PostRepository
}

func NewDeletePost(posts ports.PostRepository) *DeletePost {
	return &DeletePost{posts: posts}
}

func (uc *DeletePost) Execute(ctx context.Context, postID domain.PostID, actorID domain.UserID, actorRole string) error {
	post, err := uc.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return domerrors.ErrPostNotFound
	}
	if post.AuthorID != actorID && actorRole != domain.RoleAdmin {
		return domerrors.ErrForbidden
	}
	return uc.posts.Delete(ctx, postID)
}
