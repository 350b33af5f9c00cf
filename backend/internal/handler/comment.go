package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/shared/api"
	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/plaza-dev/plaza/shared/utils"
)

func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	var body api.CreateCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	comment, err := h.comment.Create(r.Context(), domain.CommentCreationData{
		ParentId: chi.URLParam(r, "parentId"),
		Author:   memberId,
		Content:  body.Content,
		Cue:      body.Cue,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.CreateCommentResponse{CommentId: comment.Id})
}

func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comment.Get(r.Context(), chi.URLParam(r, "commentId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewCommentView(comment))
}

func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comment.List(r.Context(), chi.URLParam(r, "parentId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewCommentListResponse(comments))
}

func (h *Handler) EditComment(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	var body api.EditCommentRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	err := h.comment.Edit(r.Context(), domain.CommentEditData{
		Id:      chi.URLParam(r, "commentId"),
		Editor:  memberId,
		Content: body.Content,
		Cue:     body.Cue,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	if err := h.comment.Delete(r.Context(), chi.URLParam(r, "commentId"), memberId); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
