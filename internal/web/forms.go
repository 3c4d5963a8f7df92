// AngelaMos | 2026
// forms.go

package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/middleware"
	"github.com/carterperez-dev/recraft/internal/post"
	"github.com/carterperez-dev/recraft/internal/product"
)

var (
	errBadPrice = core.BadRequestError("Price must be a number")
	errBadStock = core.BadRequestError("Stock must be a whole number")
)

// productForm mirrors the product editor fields as submitted. StockLoaded is
// the stock shown when the editor opened; stock is only sent when it changed.
type productForm struct {
	Action      string
	Editing     bool
	Name        string
	Description string
	Price       string
	Category    string
	Stock       string
	StockLoaded string
	Tags        string
	Photos      string
}

func productFormFrom(p *product.Product) productForm {
	stock := strconv.Itoa(p.Stock)
	return productForm{
		Action:      "/dashboard/products/" + p.ID + "/edit",
		Editing:     true,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.StringFixed(2),
		Category:    p.Category,
		Stock:       stock,
		StockLoaded: stock,
		Tags:        strings.Join(p.Tags, ", "),
		Photos:      strings.Join(p.Photos, "\n"),
	}
}

func readProductForm(r *http.Request) productForm {
	return productForm{
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
		Price:       strings.TrimSpace(r.PostFormValue("price")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Stock:       strings.TrimSpace(r.PostFormValue("stock")),
		StockLoaded: strings.TrimSpace(r.PostFormValue("stock_loaded")),
		Tags:        r.PostFormValue("tags"),
		Photos:      r.PostFormValue("photos"),
	}
}

func (f productForm) price() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(f.Price)
	if err != nil {
		return decimal.Zero, errBadPrice
	}
	return d, nil
}

func (f productForm) stock() (int, error) {
	if f.Stock == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(f.Stock)
	if err != nil {
		return 0, errBadStock
	}
	return n, nil
}

func (h *Handler) NewProductForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "product_form", "New product", productForm{
		Action: "/dashboard/products/new",
		Stock:  "0",
	})
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := readProductForm(r)
	form.Action = "/dashboard/products/new"

	req, err := form.createRequest()
	if err == nil {
		err = h.validate(req)
	}
	if err == nil {
		_, err = h.deps.Products.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	}
	if err != nil {
		h.renderForm(w, r, "product_form", "New product", form, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (f productForm) createRequest() (product.CreateProductRequest, error) {
	price, err := f.price()
	if err != nil {
		return product.CreateProductRequest{}, err
	}
	stock, err := f.stock()
	if err != nil {
		return product.CreateProductRequest{}, err
	}

	return product.CreateProductRequest{
		Name:        f.Name,
		Description: f.Description,
		Price:       price,
		Category:    f.Category,
		Stock:       stock,
		Tags:        splitList(f.Tags),
		Photos:      splitLines(f.Photos),
	}, nil
}

func (h *Handler) EditProductForm(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Products.GetMine(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "productID"),
	)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "product_form", "Edit product", productFormFrom(p))
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "productID")
	form := readProductForm(r)
	form.Action = "/dashboard/products/" + id + "/edit"
	form.Editing = true

	req, err := form.updateRequest()
	if err == nil {
		err = h.validate(req)
	}
	if err == nil {
		_, err = h.deps.Products.Update(r.Context(), middleware.GetUserID(r.Context()), id, req)
	}
	if err != nil {
		h.renderForm(w, r, "product_form", "Edit product", form, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (f productForm) updateRequest() (product.UpdateProductRequest, error) {
	price, err := f.price()
	if err != nil {
		return product.UpdateProductRequest{}, err
	}

	tags := splitList(f.Tags)
	photos := splitLines(f.Photos)
	req := product.UpdateProductRequest{
		Name:        &f.Name,
		Description: &f.Description,
		Price:       &price,
		Category:    &f.Category,
		Tags:        &tags,
		Photos:      &photos,
	}

	if f.Stock != f.StockLoaded {
		stock, err := f.stock()
		if err != nil {
			return product.UpdateProductRequest{}, err
		}
		req.Stock = &stock
	}

	return req, nil
}

type postForm struct {
	Action        string
	Editing       bool
	Title         string
	Description   string
	MaterialsUsed string
	Photos        string
}

func postFormFrom(p *post.Post) postForm {
	return postForm{
		Action:        "/dashboard/posts/" + p.ID + "/edit",
		Editing:       true,
		Title:         p.Title,
		Description:   p.Description,
		MaterialsUsed: strings.Join(p.MaterialsUsed, ", "),
		Photos:        strings.Join(p.Photos, "\n"),
	}
}

func readPostForm(r *http.Request) postForm {
	return postForm{
		Title:         strings.TrimSpace(r.PostFormValue("title")),
		Description:   strings.TrimSpace(r.PostFormValue("description")),
		MaterialsUsed: r.PostFormValue("materials_used"),
		Photos:        r.PostFormValue("photos"),
	}
}

func (h *Handler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "post_form", "New post", postForm{
		Action: "/dashboard/posts/new",
	})
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := readPostForm(r)
	form.Action = "/dashboard/posts/new"

	req := post.CreatePostRequest{
		Title:         form.Title,
		Description:   form.Description,
		MaterialsUsed: splitList(form.MaterialsUsed),
		Photos:        splitLines(form.Photos),
	}

	err := h.validate(req)
	if err == nil {
		_, err = h.deps.Posts.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	}
	if err != nil {
		h.renderForm(w, r, "post_form", "New post", form, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	p, err := h.deps.Posts.GetMine(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
	)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "post_form", "Edit post", postFormFrom(p))
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "postID")
	form := readPostForm(r)
	form.Action = "/dashboard/posts/" + id + "/edit"
	form.Editing = true

	materials := splitList(form.MaterialsUsed)
	photos := splitLines(form.Photos)
	req := post.UpdatePostRequest{
		Title:         &form.Title,
		Description:   &form.Description,
		MaterialsUsed: &materials,
		Photos:        &photos,
	}

	err := h.validate(req)
	if err == nil {
		_, err = h.deps.Posts.Update(r.Context(), middleware.GetUserID(r.Context()), id, req)
	}
	if err != nil {
		h.renderForm(w, r, "post_form", "Edit post", form, err)
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) validate(req any) error {
	if err := h.validator.Struct(req); err != nil {
		return core.BadRequestError(core.FormatValidationError(err))
	}
	return nil
}

// renderForm redisplays a form with what the user typed and the error.
func (h *Handler) renderForm(
	w http.ResponseWriter,
	r *http.Request,
	page, title string,
	data any,
	err error,
) {
	status, msg := errorView(err)
	if status == http.StatusInternalServerError {
		h.renderError(w, r, err)
		return
	}
	h.renderView(w, r, status, page, view{Title: title, Error: msg, Data: data})
}

// splitList parses a comma separated field, dropping blanks.
func splitList(raw string) []string {
	return compact(strings.Split(raw, ","))
}

// splitLines parses one entry per line, dropping blanks.
func splitLines(raw string) []string {
	return compact(strings.Split(raw, "\n"))
}

func compact(parts []string) []string {
	out := []string{}
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
