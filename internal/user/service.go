// AngelaMos | 2026
// service.go

package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/cache"
	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/middleware"
)

type Service struct {
	repo  Repository
	cache *cache.Cache
}

func NewService(repo Repository, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (*auth.UserInfo, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil, err
	}

	return toUserInfo(user), nil
}

func (s *Service) Create(
	ctx context.Context,
	nu auth.NewUser,
) (*auth.UserInfo, error) {
	user := &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(nu.Email),
		PasswordHash: nu.PasswordHash,
		Name:         nu.Name,
		Role:         nu.Role,
		Phone:        nu.Phone,
		Address:      nu.Address,
	}
	if user.Role == "" {
		user.Role = RoleBuyer
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	if user.IsArtisan() {
		s.cache.Invalidate(ctx, cache.ArtisansKey)
	}

	return toUserInfo(user), nil
}

func (s *Service) UpdatePassword(
	ctx context.Context,
	userID, passwordHash string,
) error {
	return s.repo.UpdatePassword(ctx, userID, passwordHash)
}

// LoadIdentity resolves a token subject to the stored user, so role checks
// see the current role rather than the one baked into the token.
func (s *Service) LoadIdentity(
	ctx context.Context,
	userID string,
) (*middleware.Identity, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &middleware.Identity{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) GetPublicProfile(
	ctx context.Context,
	id string,
) (*PublicProfile, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := ToPublicProfile(user)
	return &profile, nil
}

// ListArtisans returns every artisan by name. The unfiltered list is cached.
func (s *Service) ListArtisans(
	ctx context.Context,
	search string,
) ([]PublicProfile, error) {
	search = strings.TrimSpace(search)
	load := func(ctx context.Context) ([]PublicProfile, error) {
		users, err := s.repo.ListByRole(ctx, RoleArtisan, search)
		if err != nil {
			return nil, err
		}
		return ToPublicProfileList(users), nil
	}

	if search != "" {
		return load(ctx)
	}
	return cache.Remember(ctx, s.cache, cache.ArtisansKey, load)
}

// UpdateProfile applies a patch to the caller's account. Contact details are
// only stored for artisans.
func (s *Service) UpdateProfile(
	ctx context.Context,
	userID string,
	req UpdateProfileRequest,
) (*User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	if req.Contact != nil && user.IsArtisan() {
		if req.Contact.Phone != nil {
			user.Phone = *req.Contact.Phone
		}
		if req.Contact.Address != nil {
			user.Address = *req.Contact.Address
		}
	}

	if user.Name == "" {
		return nil, core.BadRequestError("Name is required")
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if user.IsArtisan() {
		s.cache.Invalidate(ctx, cache.ArtisansKey)
	}

	return user, nil
}

func toUserInfo(u *User) *auth.UserInfo {
	return &auth.UserInfo{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		Phone:        u.Phone,
		Address:      u.Address,
	}
}

var (
	_ auth.UserProvider         = (*Service)(nil)
	_ middleware.IdentityLoader = (*Service)(nil)
)
