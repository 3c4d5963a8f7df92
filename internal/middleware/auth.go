// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/carterperez-dev/recraft/internal/core"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	IdentityKey contextKey = "identity"
	ClaimsKey   contextKey = "jwt_claims"
)

const RoleArtisan = "Artisan"

type TokenVerifier interface {
	VerifyAccessToken(
		ctx context.Context,
		token string,
	) (*AccessTokenClaims, error)
}

type AccessTokenClaims struct {
	UserID string
	Role   string
}

// Identity is the caller as currently stored, minus credentials.
type Identity struct {
	ID           string
	Email        string
	Name         string
	Role         string
	ProfileImage string
}

func (i *Identity) IsArtisan() bool {
	return i != nil && i.Role == RoleArtisan
}

// IdentityLoader resolves the subject of a verified token. It returns an
// error wrapping core.ErrNotFound when the user no longer exists.
type IdentityLoader interface {
	LoadIdentity(ctx context.Context, userID string) (*Identity, error)
}

// TokenExtractor pulls a raw credential out of a request.
type TokenExtractor func(r *http.Request) string

// Authenticator rejects requests without a valid bearer token for an
// existing user, and attaches that user's Identity otherwise.
func Authenticator(
	verifier TokenVerifier,
	loader IdentityLoader,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				core.JSONError(w, core.TokenMissingError())
				return
			}

			ctx, err := authenticate(r.Context(), verifier, loader, token)
			if err != nil {
				handleAuthError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches an Identity when any extractor yields a valid
// token and never rejects the request.
func OptionalAuth(
	verifier TokenVerifier,
	loader IdentityLoader,
	extractors ...TokenExtractor,
) func(http.Handler) http.Handler {
	if len(extractors) == 0 {
		extractors = []TokenExtractor{ExtractToken}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, extract := range extractors {
				token := extract(r)
				if token == "" {
					continue
				}

				ctx, err := authenticate(r.Context(), verifier, loader, token)
				if err == nil {
					r = r.WithContext(ctx)
				}
				break
			}

			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(
	ctx context.Context,
	verifier TokenVerifier,
	loader IdentityLoader,
	token string,
) (context.Context, error) {
	claims, err := verifier.VerifyAccessToken(ctx, token)
	if err != nil {
		return ctx, err
	}

	identity, err := loader.LoadIdentity(ctx, claims.UserID)
	if err != nil {
		return ctx, core.TokenInvalidError()
	}

	ctx = context.WithValue(ctx, UserIDKey, identity.ID)
	ctx = context.WithValue(ctx, IdentityKey, identity)
	ctx = context.WithValue(ctx, ClaimsKey, claims)
	return ctx, nil
}

// RequireRole admits callers whose stored role is one of roles. It must run
// after Authenticator.
func RequireRole(message string, roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		roleSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := GetIdentity(r.Context())
			if identity == nil {
				core.JSONError(w, core.TokenMissingError())
				return
			}

			if _, ok := roleSet[identity.Role]; !ok {
				core.JSONError(w, core.UnauthorizedError(message))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func RequireArtisan(next http.Handler) http.Handler {
	return RequireRole("Not authorized as an artisan", RoleArtisan)(next)
}

func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// CookieToken reads the credential from the named cookie.
func CookieToken(name string) TokenExtractor {
	return func(r *http.Request) string {
		c, err := r.Cookie(name)
		if err != nil {
			return ""
		}
		return c.Value
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}
	if errors.Is(err, core.ErrTokenExpired) {
		core.JSONError(w, core.TokenExpiredError())
		return
	}
	core.JSONError(w, core.TokenInvalidError())
}

func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

func GetIdentity(ctx context.Context) *Identity {
	if identity, ok := ctx.Value(IdentityKey).(*Identity); ok {
		return identity
	}
	return nil
}

func GetUserRole(ctx context.Context) string {
	if identity := GetIdentity(ctx); identity != nil {
		return identity.Role
	}
	return ""
}

func GetClaims(ctx context.Context) *AccessTokenClaims {
	if claims, ok := ctx.Value(ClaimsKey).(*AccessTokenClaims); ok {
		return claims
	}
	return nil
}

func IsAuthenticated(ctx context.Context) bool {
	return GetUserID(ctx) != ""
}

// WithIdentity returns ctx carrying identity, as Authenticator would.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, identity.ID)
	return context.WithValue(ctx, IdentityKey, identity)
}
