package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/ports"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
)

const selectPostSQL = `
	SELECT id, author_id, title, body, image_url, created_at, updated_at
	FROM posts`

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO posts (id, author_id, title, body, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID.UUID, post.AuthorID.UUID, post.Title, post.Body, post.ImageURL,
		post.CreatedAt, post.UpdatedAt,
	)
	return err
}

func (r *PostRepository) GetByID(ctx context.Context, postID domain.PostID) (*domain.Post, error) {
	row := r.pool.QueryRow(ctx, selectPostSQL+` WHERE id = $1`, postID.UUID)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]*domain.Post, error) {
	rows, err := r.pool.Query(ctx, selectPostSQL+` ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE posts SET title = $1, body = $2, image_url = $3, updated_at = $4
		WHERE id = $5`,
		post.Title, post.Body, post.ImageURL, post.UpdatedAt, post.ID.UUID,
	)
	return err
}

func (r *PostRepository) Delete(ctx context.Context, postID domain.PostID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID.UUID)
	return err
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID.UUID, &p.AuthorID.UUID, &p.Title, &p.Body, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Ensure PostRepository implements ports.PostRepository.
var _ ports.PostRepository = (*PostRepository)(nil)
