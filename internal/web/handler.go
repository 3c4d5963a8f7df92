// AngelaMos | 2026
// handler.go

// Package web renders the storefront as server-side HTML over the same
// services the JSON API uses. The session credential and the cart are both
// client cookies.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/config"
	"github.com/carterperez-dev/recraft/internal/order"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/user"
)

type Products interface {
	ListPublished(ctx context.Context) ([]product.ProductResponse, error)
	ListMine(ctx context.Context, artisanID string) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (*product.Product, error)
	GetMine(ctx context.Context, ownerID, id string) (*product.Product, error)
	Create(ctx context.Context, artisanID string, req product.CreateProductRequest) (*product.Product, error)
	Update(ctx context.Context, ownerID, id string, req product.UpdateProductRequest) (*product.Product, error)
	Publish(ctx context.Context, ownerID, id string) (*product.Product, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type Posts interface {
	ListPublished(ctx context.Context) ([]post.PostResponse, error)
	ListMine(ctx context.Context, userID string) ([]post.Post, error)
	GetByID(ctx context.Context, id string) (*post.Post, error)
	GetMine(ctx context.Context, userID, id string) (*post.Post, error)
	Create(ctx context.Context, userID string, req post.CreatePostRequest) (*post.Post, error)
	Update(ctx context.Context, userID, id string, req post.UpdatePostRequest) (*post.Post, error)
	Publish(ctx context.Context, userID, id string) (*post.Post, error)
	Delete(ctx context.Context, userID, id string) error
	Like(ctx context.Context, userID, id string) (*post.LikeResponse, error)
	Unlike(ctx context.Context, userID, id string) (*post.LikeResponse, error)
}

type Artisans interface {
	ListArtisans(ctx context.Context, search string) ([]user.PublicProfile, error)
	GetPublicProfile(ctx context.Context, id string) (*user.PublicProfile, error)
}

type Profiles interface {
	GetProfile(ctx context.Context, userID string) (*user.User, error)
	UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (*user.User, error)
}

type Orders interface {
	Place(ctx context.Context, userID string, req order.PlaceOrderRequest) (*order.Order, error)
	ListMine(ctx context.Context, userID string) ([]order.Order, error)
}

type Credentials interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
	Login(ctx context.Context, req auth.LoginRequest) (*auth.AuthResponse, error)
}

type Deps struct {
	Products    Products
	Posts       Posts
	Artisans    Artisans
	Profiles    Profiles
	Orders      Orders
	Credentials Credentials
}

type Handler struct {
	deps      Deps
	cfg       config.WebConfig
	pages     *pages
	validator *validator.Validate
}

func NewHandler(deps Deps, cfg config.WebConfig) (*Handler, error) {
	p, err := loadPages()
	if err != nil {
		return nil, err
	}
	return &Handler{
		deps:      deps,
		cfg:       cfg,
		pages:     p,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}, nil
}

// RegisterRoutes mounts the storefront. optionalAuth attaches the session
// identity when the token cookie is valid and never rejects.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(optionalAuth)

		r.Get("/", h.Home)
		r.Get("/products/{productID}", h.Product)
		r.Get("/inspiration/{postID}", h.Post)
		r.Get("/artisans", h.Artisans)
		r.Get("/artisans/{userID}", h.Artisan)

		r.Get("/login", h.LoginForm)
		r.Post("/login", h.LoginSubmit)
		r.Get("/signup", h.SignupForm)
		r.Post("/signup", h.SignupSubmit)
		r.Post("/logout", h.Logout)

		r.Get("/cart", h.Cart)
		r.Post("/cart/add", h.CartAdd)
		r.Post("/cart/remove", h.CartRemove)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)

			r.Post("/inspiration/{postID}/like", h.Like)
			r.Post("/inspiration/{postID}/unlike", h.Unlike)
			r.Post("/checkout", h.Checkout)
			r.Get("/orders", h.Orders)
			r.Get("/dashboard", h.Dashboard)
			r.Get("/dashboard/profile", h.ProfileForm)
			r.Post("/dashboard/profile", h.ProfileSubmit)

			r.Get("/dashboard/posts/new", h.NewPostForm)
			r.Post("/dashboard/posts/new", h.CreatePost)
			r.Get("/dashboard/posts/{postID}/edit", h.EditPostForm)
			r.Post("/dashboard/posts/{postID}/edit", h.UpdatePost)
			r.Post("/dashboard/posts/{postID}/publish", h.PublishPost)
			r.Post("/dashboard/posts/{postID}/delete", h.DeletePost)

			r.Group(func(r chi.Router) {
				r.Use(h.requireArtisan)

				r.Get("/dashboard/products/new", h.NewProductForm)
				r.Post("/dashboard/products/new", h.CreateProduct)
				r.Get("/dashboard/products/{productID}/edit", h.EditProductForm)
				r.Post("/dashboard/products/{productID}/edit", h.UpdateProduct)
				r.Post("/dashboard/products/{productID}/publish", h.PublishProduct)
				r.Post("/dashboard/products/{productID}/delete", h.DeleteProduct)
			})
		})
	})
}
