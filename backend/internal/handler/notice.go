package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/shared/api"
	"github.com/plaza-dev/plaza/shared/utils"
)

func (h *Handler) ListNotices(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	notices, err := h.notice.List(r.Context(), memberId, chi.URLParam(r, "category"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NoticeListResponse{Notices: notices})
}

func (h *Handler) GetNotification(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	counters, err := h.notice.Counters(r.Context(), memberId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.NotificationResponse{Counters: counters})
}

func (h *Handler) BlockMember(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	if err := h.blocking.Block(r.Context(), memberId, chi.URLParam(r, "memberId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) UnblockMember(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	if err := h.blocking.Unblock(r.Context(), memberId, chi.URLParam(r, "memberId")); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}
