package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/izaman1/zamanix-dec-blog8/internal/application/blog"
	"github.com/izaman1/zamanix-dec-blog8/internal/domain"
	domerrors "github.com/izaman1/zamanix-dec-blog8/internal/domain/errors"
	"github.com/izaman1/zamanix-dec-blog8/internal/infrastructure/http/middleware"
)

// PostsHandler serves /api/blogs. Reads are public; writes require bearer auth.
type PostsHandler struct {
	create   *blog.CreatePost
	list     *blog.ListPosts
	get      *blog.GetPost
	update   *blog.UpdatePost
	delete   *blog.DeletePost
	validate *validator.Validate
	log      zerolog.Logger
}

func NewPostsHandler(create *blog.CreatePost, list *blog.ListPosts, get *blog.GetPost, update *blog.UpdatePost, del *blog.DeletePost, log zerolog.Logger) *PostsHandler {
	return &PostsHandler{
		create:   create,
		list:     list,
		get:      get,
		update:   update,
		delete:   del,
		validate: validator.New(),
		log:      log,
	}
}

type postBody struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body" validate:"required"`
	ImageURL string `json:"image" validate:"omitempty,url,max=2048"`
}

type postResponse struct {
	ID        string `json:"_id"`
	AuthorID  string `json:"author"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageURL  string `json:"image,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID.String(),
		AuthorID:  p.AuthorID.String(),
		Title:     p.Title,
		Body:      p.Body,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	actorID, _, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	var body postBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	post, err := h.create.Execute(r.Context(), blog.CreatePostInput{
		AuthorID: actorID,
		Title:    body.Title,
		Body:     body.Body,
		ImageURL: body.ImageURL,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("create post failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	writeData(w, http.StatusCreated, toPostResponse(post))
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	posts, err := h.list.Execute(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list posts failed")
		writeErr(w, http.StatusInternalServerError, "", "internal error")
		return
	}
	items := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		items = append(items, toPostResponse(p))
	}
	writeData(w, http.StatusOK, items)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	postID, ok := postIDFromURL(w, r)
	if !ok {
		return
	}
	post, err := h.get.Execute(r.Context(), postID)
	if err != nil {
		h.writePostErr(w, err, "get post failed")
		return
	}
	writeData(w, http.StatusOK, toPostResponse(post))
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	postID, ok := postIDFromURL(w, r)
	if !ok {
		return
	}
	var body postBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "", err.Error())
		return
	}
	post, err := h.update.Execute(r.Context(), blog.UpdatePostInput{
		PostID:    postID,
		ActorID:   actorID,
		ActorRole: role,
		Title:     body.Title,
		Body:      body.Body,
		ImageURL:  body.ImageURL,
	})
	if err != nil {
		h.writePostErr(w, err, "update post failed")
		return
	}
	writeData(w, http.StatusOK, toPostResponse(post))
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, role, ok := actorFromContext(w, r)
	if !ok {
		return
	}
	postID, ok := postIDFromURL(w, r)
	if !ok {
		return
	}
	if err := h.delete.Execute(r.Context(), postID, actorID, role); err != nil {
		h.writePostErr(w, err, "delete post failed")
		return
	}
	writeMessage(w, http.StatusOK, "post deleted", nil)
}

func (h *PostsHandler) writePostErr(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domerrors.ErrPostNotFound):
		writeErr(w, http.StatusNotFound, "", err.Error())
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, "", err.Error())
	default:
		h.log.Error().Err(err).Msg(logMsg)
		writeErr(w, http.StatusInternalServerError, "", "internal error")
	}
}

func actorFromContext(w http.ResponseWriter, r *http.Request) (domain.UserID, string, bool) {
	userIDStr, role := middleware.AuthFromContext(r.Context())
	if userIDStr == "" {
		writeErr(w, http.StatusUnauthorized, "", "unauthorized")
		return domain.UserID{}, "", false
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "", "invalid user id")
		return domain.UserID{}, "", false
	}
	return domain.NewUserID(userID), role, true
}

func postIDFromURL(w http.ResponseWriter, r *http.Request) (domain.PostID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusNotFound, "", "post not found")
		return domain.PostID{}, false
	}
	return domain.NewPostID(id), true
}
