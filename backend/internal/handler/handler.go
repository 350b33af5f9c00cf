package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/plaza-dev/plaza/backend/internal/service"
	"github.com/plaza-dev/plaza/shared/config"
	"github.com/plaza-dev/plaza/shared/domain"
	"github.com/plaza-dev/plaza/shared/logger"
	mw "github.com/plaza-dev/plaza/shared/middleware"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	attitude service.AttitudeService
	comment  service.CommentService
	save     service.SaveService
	post     service.PostService
	notice   service.NoticeService
	blocking service.BlockingService
	follow   service.FollowService
	health   []HealthChecker
	cfg      *config.Config
}

type Services struct {
	Attitude service.AttitudeService
	Comment  service.CommentService
	Save     service.SaveService
	Post     service.PostService
	Notice   service.NoticeService
	Blocking service.BlockingService
	Follow   service.FollowService
}

func New(s Services, cfg *config.Config, health ...HealthChecker) *Handler {
	return &Handler{
		attitude: s.Attitude,
		comment:  s.Comment,
		save:     s.Save,
		post:     s.Post,
		notice:   s.Notice,
		blocking: s.Blocking,
		follow:   s.Follow,
		health:   health,
		cfg:      cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

// member returns the authenticated caller. Routes behind NeedAuth always
// have one; the check guards against wiring mistakes.
func member(w http.ResponseWriter, r *http.Request) (domain.MemberId, bool) {
	memberId := mw.GetMemberIdFromContext(r)
	if memberId == "" {
		http.Error(w, "Please sign-in", http.StatusUnauthorized)
		return "", false
	}
	return memberId, true
}
