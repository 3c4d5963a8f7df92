// AngelaMos | 2026
// seed_test.go

package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/user"
)

type recorder struct {
	users     []auth.RegisterRequest
	products  []product.CreateProductRequest
	published map[string]bool
	posts     int
	likes     map[string]string
}

func newRecorder() *recorder {
	return &recorder{published: map[string]bool{}, likes: map[string]string{}}
}

func (r *recorder) Register(_ context.Context, req auth.RegisterRequest) (*auth.AuthResponse, error) {
	r.users = append(r.users, req)
	return &auth.AuthResponse{ID: fmt.Sprintf("u%d", len(r.users)), Role: req.Role}, nil
}

type catalog struct{ *recorder }

func (c catalog) Create(_ context.Context, _ string, req product.CreateProductRequest) (*product.Product, error) {
	c.products = append(c.products, req)
	return &product.Product{ID: fmt.Sprintf("p%d", len(c.products))}, nil
}

func (c catalog) Publish(_ context.Context, _, id string) (*product.Product, error) {
	c.published[id] = true
	return &product.Product{ID: id}, nil
}

type feed struct{ *recorder }

func (f feed) Create(_ context.Context, userID string, _ post.CreatePostRequest) (*post.Post, error) {
	f.posts++
	return &post.Post{ID: fmt.Sprintf("post%d", f.posts), UserID: userID}, nil
}

func (f feed) Publish(_ context.Context, _, id string) (*post.Post, error) {
	return &post.Post{ID: id}, nil
}

func (f feed) Like(_ context.Context, userID, id string) (*post.LikeResponse, error) {
	key := userID + "/" + id
	if _, dup := f.likes[key]; dup {
		return nil, fmt.Errorf("duplicate like %s", key)
	}
	f.likes[key] = id
	return &post.LikeResponse{}, nil
}

func TestSeeder_Run(t *testing.T) {
	rec := newRecorder()
	opts := Options{Artisans: 2, Buyers: 3, ProductsPerArtisan: 3, PostsPerUser: 1, Seed: 42}

	res, err := New(rec, catalog{rec}, feed{rec}, opts).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Artisans)
	assert.Equal(t, 3, res.Buyers)
	assert.Equal(t, 6, res.Products)
	assert.Equal(t, 5, res.Posts)
	assert.Equal(t, len(rec.likes), res.Likes)
	assert.Len(t, rec.published, 4)

	for i, u := range rec.users {
		assert.Equal(t, DefaultPassword, u.Password)
		if i < 2 {
			assert.Equal(t, user.RoleArtisan, u.Role)
			require.NotNil(t, u.Contact)
		} else {
			assert.Equal(t, user.RoleBuyer, u.Role)
			assert.Nil(t, u.Contact)
		}
	}

	for _, p := range rec.products {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Photos)
		assert.False(t, p.Price.IsNegative())
		assert.GreaterOrEqual(t, p.Stock, 0)
	}
}

func TestSeeder_Reproducible(t *testing.T) {
	run := func() []auth.RegisterRequest {
		rec := newRecorder()
		_, err := New(rec, catalog{rec}, feed{rec}, Options{Artisans: 1, Buyers: 1, Seed: 7}).
			Run(context.Background())
		require.NoError(t, err)
		return rec.users
	}

	assert.Equal(t, run(), run())
}
