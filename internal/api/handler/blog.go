package handler

import (
	"net/http"

	"github.com/Rrens/tourism-api/internal/api/response"
	"github.com/Rrens/tourism-api/internal/domain"
	"github.com/Rrens/tourism-api/internal/service"
	"github.com/google/uuid"
)

// BlogHandler handles blog posts, comments and reading lists
type BlogHandler struct {
	service *service.BlogService
}

// NewBlogHandler creates a new blog handler
func NewBlogHandler(service *service.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// List returns posts. The tag query parameter filters by tag.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, mine, ok := listQuery(w, r, "tag", domain.BlogOrderings)
	if !ok {
		return
	}

	posts, err := h.service.ListPosts(r.Context(), optionalActor(r), mine, filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, posts)
}

func (h *BlogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	filter, _, ok := listQuery(w, r, "tag", domain.BlogOrderings)
	if !ok {
		return
	}

	posts, err := h.service.FeaturedPosts(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, posts)
}

func (h *BlogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	post, err := h.service.GetPost(r.Context(), optionalActor(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, post)
}

// View counts one read of a post
func (h *BlogHandler) View(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	views, err := h.service.RecordView(r.Context(), optionalActor(r), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]int{"views": views})
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	var input domain.BlogPostCreate
	if !decode(w, r, &input) {
		return
	}

	post, err := h.service.CreatePost(r.Context(), caller, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, post)
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.BlogPostUpdate
	if !decode(w, r, &input) {
		return
	}

	post, err := h.service.UpdatePost(r.Context(), caller, id, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, post)
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeletePost(r.Context(), caller, id); err != nil {
		handleError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *BlogHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	post, err := h.service.ToggleFeatured(r.Context(), caller, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, post)
}

// commentParams reads the post and comment ids from the path
func commentParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	postID, ok := uuidParam(w, r, "id")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	commentID, ok := uuidParam(w, r, "commentID")
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	return postID, commentID, true
}

func (h *BlogHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	comments, err := h.service.ListComments(r.Context(), optionalActor(r), postID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, comments)
}

func (h *BlogHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(w, r)
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), optionalActor(r), postID, commentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, comment)
}

func (h *BlogHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	postID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}
	var input domain.BlogCommentInput
	if !decode(w, r, &input) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), caller, postID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, comment)
}

func (h *BlogHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	postID, commentID, ok := commentParams(w, r)
	if !ok {
		return
	}
	var input domain.BlogCommentInput
	if !decode(w, r, &input) {
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), caller, postID, commentID, input)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, comment)
}

func (h *BlogHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	postID, commentID, ok := commentParams(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteComment(r.Context(), caller, postID, commentID); err != nil {
		handleError(w, r, err)
		return
	}
	response.NoContent(w)
}

func (h *BlogHandler) CommentHelpful(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(w, r)
	if !ok {
		return
	}

	count, err := h.service.MarkCommentHelpful(r.Context(), postID, commentID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]int{"helpful_count": count})
}

func (h *BlogHandler) ReportComment(w http.ResponseWriter, r *http.Request) {
	postID, commentID, ok := commentParams(w, r)
	if !ok {
		return
	}

	if err := h.service.ReportComment(r.Context(), postID, commentID); err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]bool{"reported": true})
}

// Save adds a post to the caller's reading list
func (h *BlogHandler) Save(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	postID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	saved, err := h.service.SavePost(r.Context(), caller, postID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.Created(w, saved)
}

func (h *BlogHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}
	postID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.UnsavePost(r.Context(), caller, postID); err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, map[string]string{"status": "removed"})
}

func (h *BlogHandler) Saved(w http.ResponseWriter, r *http.Request) {
	caller, ok := actor(w, r)
	if !ok {
		return
	}

	saved, err := h.service.ListSavedPosts(r.Context(), caller)
	if err != nil {
		handleError(w, r, err)
		return
	}
	response.OK(w, saved)
}
