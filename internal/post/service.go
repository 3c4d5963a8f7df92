// AngelaMos | 2026
// service.go

package post

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/core"
)

var (
	errIncomplete   = core.BadRequestError("Please provide a title, description, and at least one photo URL")
	errAlreadyLiked = core.BadRequestError("You already liked this post")
	errNotLiked     = core.BadRequestError("You have not liked this post")
)

type Service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) ListPublished(ctx context.Context) ([]PostResponse, error) {
	return cache.Remember(ctx, s.cache, cache.PublishedPostsKey,
		func(ctx context.Context) ([]PostResponse, error) {
			posts, err := s.repo.ListPublished(ctx)
			if err != nil {
				return nil, err
			}
			return ToPostResponseList(posts), nil
		},
	)
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Post, error) {
	return s.repo.ListByUser(ctx, userID)
}

// GetByID does not filter on status.
func (s *Service) GetByID(ctx context.Context, id string) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return p, nil
}

func (s *Service) GetMine(ctx context.Context, userID, id string) (*Post, error) {
	return s.owned(ctx, userID, id, "Not authorized to access this post")
}

func (s *Service) Create(
	ctx context.Context,
	userID string,
	req CreatePostRequest,
) (*Post, error) {
	ctx, span := core.StartSpan(ctx, "post.Create",
		attribute.String("user.id", userID),
	)
	defer span.End()

	title := strings.TrimSpace(req.Title)
	if title == "" || strings.TrimSpace(req.Description) == "" || len(req.Photos) == 0 {
		return nil, errIncomplete
	}

	p := &Post{
		ID:            uuid.New().String(),
		UserID:        userID,
		Title:         title,
		Description:   req.Description,
		MaterialsUsed: orEmpty(req.MaterialsUsed),
		Photos:        req.Photos,
		Status:        StatusDraft,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.invalidate(ctx)
	return s.repo.GetByID(ctx, p.ID)
}

func (s *Service) Update(
	ctx context.Context,
	userID, id string,
	req UpdatePostRequest,
) (*Post, error) {
	ctx, span := core.StartSpan(ctx, "post.Update",
		attribute.String("post.id", id),
	)
	defer span.End()

	p, err := s.owned(ctx, userID, id, "User not authorized to edit this post")
	if err != nil {
		return nil, err
	}

	if err := applyPatch(p, req); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Publish(ctx context.Context, userID, id string) (*Post, error) {
	p, err := s.owned(ctx, userID, id, "User not authorized to publish this post")
	if err != nil {
		return nil, err
	}

	p.Status = StatusPublished
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return p, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id, "User not authorized to delete this post"); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return notFound(err)
	}

	s.invalidate(ctx)
	return nil
}

// Like adds userID to the post's likes. Authors may like their own posts.
func (s *Service) Like(ctx context.Context, userID, id string) (*LikeResponse, error) {
	return s.toggleLike(ctx, userID, id, s.repo.Like, errAlreadyLiked)
}

func (s *Service) Unlike(ctx context.Context, userID, id string) (*LikeResponse, error) {
	return s.toggleLike(ctx, userID, id, s.repo.Unlike, errNotLiked)
}

func (s *Service) toggleLike(
	ctx context.Context,
	userID, id string,
	mutate func(ctx context.Context, postID, userID string) (bool, error),
	unchanged error,
) (*LikeResponse, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	changed, err := mutate(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, unchanged
	}

	count, err := s.repo.CountLikes(ctx, id)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return &LikeResponse{LikeCount: count}, nil
}

func (s *Service) owned(
	ctx context.Context,
	userID, id, denied string,
) (*Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	if !p.OwnedBy(userID) {
		return nil, core.UnauthorizedError(denied)
	}
	return p, nil
}

func (s *Service) invalidate(ctx context.Context) {
	s.cache.Invalidate(ctx, cache.PublishedPostsKey)
}

func applyPatch(p *Post, req UpdatePostRequest) error {
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return core.BadRequestError("Title must not be empty")
		}
		p.Title = title
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			return core.BadRequestError("Description must not be empty")
		}
		p.Description = *req.Description
	}
	if req.MaterialsUsed != nil {
		p.MaterialsUsed = orEmpty(*req.MaterialsUsed)
	}
	if req.Photos != nil {
		if len(*req.Photos) == 0 {
			return core.BadRequestError("At least one photo URL is required")
		}
		p.Photos = *req.Photos
	}
	if req.Status != nil {
		switch *req.Status {
		case StatusDraft, StatusPublished:
			p.Status = *req.Status
		default:
			return core.BadRequestError("Status must be Draft or Published")
		}
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("Post")
	}
	return err
}
