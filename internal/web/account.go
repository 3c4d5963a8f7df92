// AngelaMos | 2026
// account.go

package web

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/recraft/internal/auth"
	"github.com/carterperez-dev/recraft/internal/middleware"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
	"github.com/carterperez-dev/recraft/internal/user"
)

type loginPage struct {
	Email string
	Next  string
}

func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", "Sign in", loginPage{
		Next: safeNext(r.URL.Query().Get("next")),
	})
}

func (h *Handler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := loginPage{
		Email: r.PostFormValue("email"),
		Next:  safeNext(r.PostFormValue("next")),
	}

	resp, err := h.deps.Credentials.Login(r.Context(), auth.LoginRequest{
		Email:    data.Email,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		status, msg := errorView(err)
		h.renderView(w, r, status, "login", view{Title: "Sign in", Error: msg, Data: data})
		return
	}

	h.startSession(w, resp)
	http.Redirect(w, r, data.Next, http.StatusSeeOther)
}

type signupPage struct {
	Name    string
	Email   string
	Role    string
	Phone   string
	Address string
	Next    string
}

func (h *Handler) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "signup", "Create account", signupPage{
		Role: auth.RoleBuyer,
		Next: safeNext(r.URL.Query().Get("next")),
	})
}

func (h *Handler) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	data := signupPage{
		Name:    strings.TrimSpace(r.PostFormValue("name")),
		Email:   strings.TrimSpace(r.PostFormValue("email")),
		Role:    r.PostFormValue("role"),
		Phone:   strings.TrimSpace(r.PostFormValue("phone")),
		Address: strings.TrimSpace(r.PostFormValue("address")),
		Next:    safeNext(r.PostFormValue("next")),
	}

	req := auth.RegisterRequest{
		Name:     data.Name,
		Email:    data.Email,
		Password: r.PostFormValue("password"),
		Role:     data.Role,
	}
	if data.Role == auth.RoleArtisan && (data.Phone != "" || data.Address != "") {
		req.Contact = &auth.Contact{Phone: data.Phone, Address: data.Address}
	}

	fail := func(err error) {
		status, msg := errorView(err)
		h.renderView(w, r, status, "signup", view{Title: "Create account", Error: msg, Data: data})
	}

	if err := h.validate(req); err != nil {
		fail(err)
		return
	}

	resp, err := h.deps.Credentials.Register(r.Context(), req)
	if err != nil {
		fail(err)
		return
	}

	h.startSession(w, resp)
	http.Redirect(w, r, data.Next, http.StatusSeeOther)
}

func (h *Handler) startSession(w http.ResponseWriter, resp *auth.AuthResponse) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.TokenCookie,
		Value:    resp.Token,
		Path:     "/",
		Expires:  resp.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

type profilePage struct {
	Name         string
	Email        string
	ProfileImage string
	Phone        string
	Address      string
	Artisan      bool
	Saved        bool
}

func toProfilePage(u *user.User) profilePage {
	return profilePage{
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
		Phone:        u.Phone,
		Address:      u.Address,
		Artisan:      u.IsArtisan(),
	}
}

func (h *Handler) ProfileForm(w http.ResponseWriter, r *http.Request) {
	u, err := h.deps.Profiles.GetProfile(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	data := toProfilePage(u)
	data.Saved = r.URL.Query().Get("saved") == "1"
	h.render(w, r, http.StatusOK, "profile", "Profile", data)
}

// ProfileSubmit saves the form. Contact fields are only sent for artisans.
func (h *Handler) ProfileSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostFormValue("name"))
	image := strings.TrimSpace(r.PostFormValue("profile_image"))
	phone := strings.TrimSpace(r.PostFormValue("phone"))
	address := strings.TrimSpace(r.PostFormValue("address"))

	req := user.UpdateProfileRequest{Name: &name, ProfileImage: &image}
	identity := middleware.GetIdentity(r.Context())
	if identity.IsArtisan() {
		req.Contact = &user.ContactPatch{Phone: &phone, Address: &address}
	}

	data := profilePage{
		Name:         name,
		Email:        identity.Email,
		ProfileImage: image,
		Phone:        phone,
		Address:      address,
		Artisan:      identity.IsArtisan(),
	}

	fail := func(err error) {
		status, msg := errorView(err)
		h.renderView(w, r, status, "profile", view{Title: "Profile", Error: msg, Data: data})
	}

	if err := h.validate(req); err != nil {
		fail(err)
		return
	}

	if _, err := h.deps.Profiles.UpdateProfile(r.Context(), identity.ID, req); err != nil {
		fail(err)
		return
	}

	http.Redirect(w, r, "/dashboard/profile?saved=1", http.StatusSeeOther)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, h.cfg.TokenCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type dashboardPage struct {
	Products []product.ProductResponse
	Posts    []post.PostResponse
}

// Dashboard lists the caller's own drafts and published items. Products
// only appear for artisans.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	identity := middleware.GetIdentity(ctx)
	data := dashboardPage{Products: []product.ProductResponse{}}

	if identity.IsArtisan() {
		products, err := h.deps.Products.ListMine(ctx, identity.ID)
		if err != nil {
			h.renderError(w, r, err)
			return
		}
		data.Products = product.ToProductResponseList(products)
	}

	posts, err := h.deps.Posts.ListMine(ctx, identity.ID)
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	data.Posts = post.ToPostResponseList(posts)

	h.render(w, r, http.StatusOK, "dashboard", "Dashboard", data)
}

func (h *Handler) PublishProduct(w http.ResponseWriter, r *http.Request) {
	h.dashboardAction(w, r, "productID", func(ctx context.Context, userID, id string) error {
		_, err := h.deps.Products.Publish(ctx, userID, id)
		return err
	})
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.dashboardAction(w, r, "productID", h.deps.Products.Delete)
}

func (h *Handler) PublishPost(w http.ResponseWriter, r *http.Request) {
	h.dashboardAction(w, r, "postID", func(ctx context.Context, userID, id string) error {
		_, err := h.deps.Posts.Publish(ctx, userID, id)
		return err
	})
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	h.dashboardAction(w, r, "postID", h.deps.Posts.Delete)
}

func (h *Handler) dashboardAction(
	w http.ResponseWriter,
	r *http.Request,
	param string,
	action func(ctx context.Context, userID, id string) error,
) {
	err := action(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, param))
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}
