package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/shared/api"
	"github.com/plaza-dev/plaza/shared/utils"
)

func (h *Handler) GetSave(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	saved, err := h.save.IsSaved(r.Context(), memberId, chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SaveResponse{Saved: saved})
}

func (h *Handler) ToggleSave(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	saved, err := h.save.Toggle(r.Context(), memberId, chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.SaveResponse{Saved: saved})
}
