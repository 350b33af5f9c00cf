package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/shared/api"
	"github.com/plaza-dev/plaza/shared/utils"
)

func (h *Handler) GetFollow(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	following, err := h.follow.IsFollowing(r.Context(), memberId, chi.URLParam(r, "memberId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.FollowResponse{Following: following})
}

func (h *Handler) FollowMember(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	if err := h.follow.Follow(r.Context(), memberId, chi.URLParam(r, "memberId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.FollowResponse{Following: true})
}

func (h *Handler) UnfollowMember(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	if err := h.follow.Unfollow(r.Context(), memberId, chi.URLParam(r, "memberId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.FollowResponse{Following: false})
}
