// AngelaMos | 2026
// handler.go

package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/recraft/internal/core"
	"github.com/carterperez-dev/recraft/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterRoutes mounts the feed. Any signed-in user may author posts.
func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/posts", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{postID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Get("/myposts", h.ListMine)
			r.Get("/myposts/{postID}", h.GetMine)
			r.Post("/", h.Create)
			r.Put("/{postID}", h.Update)
			r.Put("/{postID}/publish", h.Publish)
			r.Delete("/{postID}", h.Delete)
			r.Post("/{postID}/like", h.Like)
			r.Post("/{postID}/unlike", h.Unlike)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPublished(r.Context())
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, posts)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetByID(r.Context(), chi.URLParam(r, "postID"))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPostResponse(p))
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListMine(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPostResponseList(posts))
}

func (h *Handler) GetMine(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetMine(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPostResponse(p))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Created(w, ToPostResponse(p))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
		req,
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPostResponse(p))
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Publish(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, ToPostResponse(p))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.Message(w, "Post removed successfully")
}

func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Like(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Unlike(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "postID"),
	)
	if err != nil {
		core.JSONError(w, err)
		return
	}

	core.OK(w, resp)
}
