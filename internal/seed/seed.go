// AngelaMos | 2026
// seed.go

// Package seed fills a development database with demo artisans, buyers,
// products and inspiration posts. It drives the regular services so seeded
// rows obey the same rules as real traffic.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/user"
)

const DefaultPassword = "recraft-demo-pass"

type Accounts interface {
	Register(ctx context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error)
}

type Catalog interface {
	Create(ctx context.Context, ownerID string, req product.CreateProductRequest) (*product.Product, error)
	Publish(ctx context.Context, ownerID, id string) (*product.Product, error)
}

type Feed interface {
	Create(ctx context.Context, userID string, req post.CreatePostRequest) (*post.Post, error)
	Publish(ctx context.Context, userID, id string) (*post.Post, error)
	Like(ctx context.Context, userID, id string) (*post.LikeResponse, error)
}

type Options struct {
	Artisans           int
	Buyers             int
	ProductsPerArtisan int
	PostsPerUser       int
	Password           string
	// Seed makes the generated data reproducible. Zero picks a random seed.
	Seed int64
}

func DefaultOptions() Options {
	return Options{
		Artisans:           4,
		Buyers:             6,
		ProductsPerArtisan: 5,
		PostsPerUser:       1,
		Password:           DefaultPassword,
	}
}

type Result struct {
	Artisans int
	Buyers   int
	Products int
	Posts    int
	Likes    int
}

type Seeder struct {
	accounts Accounts
	catalog  Catalog
	feed     Feed
	opts     Options
	faker    *gofakeit.Faker
}

func New(accounts Accounts, catalog Catalog, feed Feed, opts Options) *Seeder {
	if opts.Password == "" {
		opts.Password = DefaultPassword
	}
	return &Seeder{
		accounts: accounts,
		catalog:  catalog,
		feed:     feed,
		opts:     opts,
		faker:    gofakeit.New(opts.Seed),
	}
}

var crafts = []string{
	"Ceramics", "Textiles", "Woodwork", "Jewelry", "Leather", "Glass", "Paper",
}

// Run creates every account first, then listings, then posts and likes.
// Roughly a third of the products stay in Draft.
func (s *Seeder) Run(ctx context.Context) (*Result, error) {
	res := &Result{}

	artisans := make([]string, 0, s.opts.Artisans)
	for range s.opts.Artisans {
		acct, err := s.register(ctx, user.RoleArtisan)
		if err != nil {
			return res, err
		}
		artisans = append(artisans, acct.ID)
		res.Artisans++
	}

	everyone := append([]string(nil), artisans...)
	for range s.opts.Buyers {
		acct, err := s.register(ctx, user.RoleBuyer)
		if err != nil {
			return res, err
		}
		everyone = append(everyone, acct.ID)
		res.Buyers++
	}

	for _, artisanID := range artisans {
		for i := range s.opts.ProductsPerArtisan {
			p, err := s.catalog.Create(ctx, artisanID, s.product())
			if err != nil {
				return res, fmt.Errorf("seed product: %w", err)
			}
			res.Products++

			if i%3 != 2 {
				if _, err := s.catalog.Publish(ctx, artisanID, p.ID); err != nil {
					return res, fmt.Errorf("publish product: %w", err)
				}
			}
		}
	}

	for _, authorID := range everyone {
		for range s.opts.PostsPerUser {
			p, err := s.feed.Create(ctx, authorID, s.post())
			if err != nil {
				return res, fmt.Errorf("seed post: %w", err)
			}
			if _, err := s.feed.Publish(ctx, authorID, p.ID); err != nil {
				return res, fmt.Errorf("publish post: %w", err)
			}
			res.Posts++

			for _, fan := range everyone {
				if fan == authorID || !s.faker.Bool() {
					continue
				}
				if _, err := s.feed.Like(ctx, fan, p.ID); err != nil {
					return res, fmt.Errorf("seed like: %w", err)
				}
				res.Likes++
			}
		}
	}

	slog.InfoContext(ctx, "seed complete",
		"artisans", res.Artisans,
		"buyers", res.Buyers,
		"products", res.Products,
		"posts", res.Posts,
		"likes", res.Likes,
	)
	return res, nil
}

func (s *Seeder) register(ctx context.Context, role string) (*auth.AuthResponse, error) {
	f := s.faker
	req := auth.RegisterRequest{
		Name:     f.Name(),
		Email:    strings.ToLower(fmt.Sprintf("%s.%d@%s", f.Username(), f.Number(1000, 9999), "recraft.test")),
		Password: s.opts.Password,
		Role:     role,
	}
	if role == user.RoleArtisan {
		req.Contact = &auth.Contact{
			Phone:   f.Phone(),
			Address: fmt.Sprintf("%s, %s %s", f.Street(), f.City(), f.Zip()),
		}
	}

	acct, err := s.accounts.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", strings.ToLower(role), err)
	}
	return acct, nil
}

func (s *Seeder) product() product.CreateProductRequest {
	f := s.faker
	return product.CreateProductRequest{
		Name:        f.ProductName(),
		Description: f.ProductDescription(),
		Price:       decimal.NewFromFloat(f.Price(5, 250)).Round(2),
		Category:    f.RandomString(crafts),
		Stock:       f.Number(0, 25),
		Tags:        []string{strings.ToLower(f.ProductMaterial()), strings.ToLower(f.Adjective())},
		Photos:      []string{photo(f.UUID())},
	}
}

func (s *Seeder) post() post.CreatePostRequest {
	f := s.faker
	return post.CreatePostRequest{
		Title:         strings.TrimSuffix(f.Sentence(4), "."),
		Description:   f.Paragraph(1, 3, 12, " "),
		MaterialsUsed: []string{strings.ToLower(f.ProductMaterial())},
		Photos:        []string{photo(f.UUID()), photo(f.UUID())},
	}
}

func photo(seed string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/800/800", seed)
}
