package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/plaza-dev/plaza/shared/api"
	"github.com/plaza-dev/plaza/shared/utils"
)

func (h *Handler) GetAttitude(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	record, err := h.attitude.Get(r.Context(), memberId, chi.URLParam(r, "id"))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.AttitudeResponse{
		Attitude:               record.Attitude,
		CommentAttitudeMapping: record.CommentAttitudeMapping,
	})
}

func (h *Handler) ExpressAttitude(w http.ResponseWriter, r *http.Request) {
	memberId, ok := member(w, r)
	if !ok {
		return
	}

	var body api.ExpressAttitudeRequest
	if err := utils.DecodeValidate(r.Body, &body); err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	tr, err := h.attitude.Express(r.Context(), memberId, chi.URLParam(r, "id"), *body.Attitude)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	writeJSON(w, http.StatusOK, api.ExpressAttitudeResponse{Mode: string(tr.Mode), Attitude: tr.Next})
}
