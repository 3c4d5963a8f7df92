// AngelaMos | 2026
// pages.go

package web

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/recraft/internal/middleware"
	"github.com/carterperez-dev/recraft/internal/order"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/user"
)

type homePage struct {
	Products []product.ProductResponse
	Posts    []post.PostResponse
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	products, err := h.deps.Products.ListPublished(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	posts, err := h.deps.Posts.ListPublished(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "home", "Recraft", homePage{
		Products: products,
		Posts:    posts,
	})
}

type productPage struct {
	Product product.ProductResponse
	Artisan *user.PublicProfile
}

func (h *Handler) Product(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Products.GetByID(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	data := productPage{Product: product.ToProductResponse(p)}
	if artisan, err := h.deps.Artisans.GetPublicProfile(r.Context(), p.ArtisanID); err == nil {
		data.Artisan = artisan
	}

	h.render(w, r, http.StatusOK, "product", p.Name, data)
}

type postPage struct {
	Post  post.PostResponse
	Liked bool
}

func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Posts.GetByID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post", p.Title, postPage{
		Post:  post.ToPostResponse(p),
		Liked: p.LikedBy(middleware.GetUserID(r.Context())),
	})
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.deps.Posts.Like)
}

func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	h.toggleLike(w, r, h.deps.Posts.Unlike)
}

func (h *Handler) toggleLike(
	w http.ResponseWriter,
	r *http.Request,
	action func(ctx context.Context, userID, id string) (*post.LikeResponse, error),
) {
	id := chi.URLParam(r, "postID")
	if _, err := action(r.Context(), middleware.GetUserID(r.Context()), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/inspiration/"+id, http.StatusSeeOther)
}

type artisansPage struct {
	Query    string
	Artisans []user.PublicProfile
}

func (h *Handler) Artisans(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))

	artisans, err := h.deps.Artisans.ListArtisans(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "artisans", "Artisans", artisansPage{
		Query:    q,
		Artisans: artisans,
	})
}

type artisanPage struct {
	Artisan  *user.PublicProfile
	Products []product.ProductResponse
}

func (h *Handler) Artisan(w http.ResponseWriter, r *http.Request) {
	profile, err := h.deps.Artisans.GetPublicProfile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	all, err := h.deps.Products.ListMine(r.Context(), profile.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	published := make([]product.ProductResponse, 0, len(all))
	for i := range all {
		if all[i].IsPublished() {
			published = append(published, product.ToProductResponse(&all[i]))
		}
	}

	h.render(w, r, http.StatusOK, "artisan", profile.Name, artisanPage{
		Artisan:  profile,
		Products: published,
	})
}

type cartItem struct {
	Product   product.ProductResponse
	Qty       int
	LineTotal decimal.Decimal
}

type cartPage struct {
	Items []cartItem
	Total decimal.Decimal
}

func (h *Handler) Cart(w http.ResponseWriter, r *http.Request) {
	h.renderCart(w, r, http.StatusOK, "")
}

func (h *Handler) renderCart(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	cart := h.readCart(r)
	data := cartPage{Items: make([]cartItem, 0, len(cart.Lines)), Total: decimal.Zero}

	for _, line := range cart.Lines {
		p, err := h.deps.Products.GetByID(r.Context(), line.ProductID)
		if err != nil {
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		data.Items = append(data.Items, cartItem{
			Product:   product.ToProductResponse(p),
			Qty:       line.Qty,
			LineTotal: lineTotal,
		})
		data.Total = data.Total.Add(lineTotal)
	}

	h.renderView(w, r, status, "cart", view{Title: "Cart", Error: errMsg, Data: data})
}

func (h *Handler) CartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := r.PostFormValue("product_id")
	if _, err := h.deps.Products.GetByID(r.Context(), id); err != nil {
		h.renderError(w, r, err)
		return
	}

	qty, err := strconv.Atoi(r.PostFormValue("qty"))
	if err != nil || qty < 1 {
		qty = 1
	}

	cart := h.readCart(r)
	cart.Add(id, qty)
	if err := h.writeCart(w, cart); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) CartRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	cart := h.readCart(r)
	cart.Remove(r.PostFormValue("product_id"))
	if err := h.writeCart(w, cart); err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Checkout submits the cookie cart to the order workflow and clears it on
// success.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	cart := h.readCart(r)
	req := order.PlaceOrderRequest{
		OrderItems: make([]order.ItemRequest, 0, len(cart.Lines)),
		ShippingAddress: order.ShippingAddress{
			Address: r.PostFormValue("address"),
			City:    r.PostFormValue("city"),
			ZipCode: r.PostFormValue("zip_code"),
		},
	}
	for _, line := range cart.Lines {
		req.OrderItems = append(req.OrderItems, order.ItemRequest{
			Product: line.ProductID,
			Qty:     line.Qty,
		})
	}

	_, err := h.deps.Orders.Place(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		status, msg := errorView(err)
		if status == http.StatusInternalServerError {
			h.renderError(w, r, err)
			return
		}
		h.renderCart(w, r, status, msg)
		return
	}

	h.clearCookie(w, h.cfg.CartCookie)
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.deps.Orders.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "orders", "My orders", order.ToOrderResponseList(orders))
}
