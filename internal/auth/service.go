// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carterperez-dev/recraft/internal/core"
)

const (
	RoleBuyer   = "Buyer"
	RoleArtisan = "Artisan"
)

var (
	ErrInvalidCredentials = core.UnauthorizedError("Invalid email or password")
	ErrEmailExists        = core.DuplicateError("User already exists")
)

// UserInfo is the credential-bearing view of a user.
type UserInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	ProfileImage string
	Phone        string
	Address      string
}

type NewUser struct {
	Email        string
	Name         string
	PasswordHash string
	Role         string
	Phone        string
	Address      string
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	Create(ctx context.Context, u NewUser) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

type TokenIssuer interface {
	CreateAccessToken(userID, role string) (*IssuedToken, error)
}

type Service struct {
	tokens TokenIssuer
	users  UserProvider
}

func NewService(tokens TokenIssuer, users UserProvider) *Service {
	return &Service{tokens: tokens, users: users}
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*AuthResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	nu := NewUser{
		Email:        normalizeEmail(req.Email),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: passwordHash,
		Role:         req.Role,
	}
	if nu.Role == "" {
		nu.Role = RoleBuyer
	}
	// Contact details only belong to artisans.
	if req.Contact != nil && nu.Role == RoleArtisan {
		nu.Phone = req.Contact.Phone
		nu.Address = req.Contact.Address
	}

	user, err := s.users.Create(ctx, nu)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*AuthResponse, error) {
	var storedHash string

	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	switch {
	case err == nil:
		storedHash = user.PasswordHash
	case errors.Is(err, core.ErrNotFound):
	default:
		return nil, fmt.Errorf("get user: %w", err)
	}

	check, err := core.CheckPassword(req.Password, storedHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !check.Valid {
		return nil, ErrInvalidCredentials
	}

	if check.Rehash != "" {
		if upErr := s.users.UpdatePassword(ctx, user.ID, check.Rehash); upErr != nil {
			slog.WarnContext(ctx, "password rehash failed",
				"user_id", user.ID,
				"error", upErr,
			)
		}
	}

	return s.issue(user)
}

func (s *Service) issue(user *UserInfo) (*AuthResponse, error) {
	token, err := s.tokens.CreateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create token: %w", err)
	}

	return &AuthResponse{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		Contact:      Contact{Phone: user.Phone, Address: user.Address},
		Token:        token.Token,
		ExpiresAt:    token.ExpiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
