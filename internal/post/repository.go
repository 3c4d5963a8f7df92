// AngelaMos | 2026
// repository.go

package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/recraft/internal/core"
)

type Repository interface {
	ListPublished(ctx context.Context) ([]Post, error)
	ListByUser(ctx context.Context, userID string) ([]Post, error)
	GetByID(ctx context.Context, id string) (*Post, error)
	Create(ctx context.Context, p *Post) error
	Update(ctx context.Context, p *Post) error
	Delete(ctx context.Context, id string) error
	// Like reports whether a like was added; false means it already existed.
	Like(ctx context.Context, postID, userID string) (bool, error)
	// Unlike reports whether a like was removed.
	Unlike(ctx context.Context, postID, userID string) (bool, error)
	CountLikes(ctx context.Context, postID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectPosts = `
		SELECT p.id, p.user_id, p.title, p.description, p.materials_used,
		       p.photos, p.status, p.created_at, p.updated_at,
		       u.name AS author_name, u.profile_image AS author_image,
		       u.role AS author_role,
		       ARRAY(SELECT l.user_id::text FROM post_likes l
		             WHERE l.post_id = p.id ORDER BY l.created_at) AS likes
		FROM inspiration_posts p
		JOIN users u ON u.id = p.user_id`

func (r *repository) ListPublished(ctx context.Context) ([]Post, error) {
	query := selectPosts + `
		WHERE p.status = $1
		ORDER BY p.created_at DESC`

	posts := []Post{}
	if err := r.db.SelectContext(ctx, &posts, query, StatusPublished); err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}

	return posts, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]Post, error) {
	query := selectPosts + `
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`

	posts := []Post{}
	if err := r.db.SelectContext(ctx, &posts, query, userID); err != nil {
		return nil, fmt.Errorf("list user posts: %w", err)
	}

	return posts, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Post, error) {
	if !core.ValidID(id) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}

	var p Post
	err := r.db.GetContext(ctx, &p, selectPosts+` WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO inspiration_posts (id, user_id, title, description,
		                               materials_used, photos, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.UserID,
		p.Title,
		p.Description,
		p.MaterialsUsed,
		p.Photos,
		p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, p *Post) error {
	query := `
		UPDATE inspiration_posts
		SET title = $2, description = $3, materials_used = $4, photos = $5,
		    status = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &p.UpdatedAt, query,
		p.ID,
		p.Title,
		p.Description,
		p.MaterialsUsed,
		p.Photos,
		p.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update post: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM inspiration_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete post: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Like(ctx context.Context, postID, userID string) (bool, error) {
	query := `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING`

	return r.affected(ctx, "like post", query, postID, userID)
}

func (r *repository) Unlike(ctx context.Context, postID, userID string) (bool, error) {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	return r.affected(ctx, "unlike post", query, postID, userID)
}

func (r *repository) CountLikes(ctx context.Context, postID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (r *repository) affected(
	ctx context.Context,
	op, query string,
	args ...any,
) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return rows == 1, nil
}
