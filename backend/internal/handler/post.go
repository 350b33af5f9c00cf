package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/shared/api"
	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/plaza-dev/plaza/shared/utils"
)

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	var body api.CreatePostRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	post, err := h.post.Create(r.Context(), domain.PostCreationData{
		Author:    memberId,
		Title:     body.Title,
		Content:   body.Content,
		ChannelId: body.ChannelId,
		TopicIds:  body.TopicIds,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.CreatePostResponse{PostId: post.Id})
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.post.Get(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NewPostView(post))
}
