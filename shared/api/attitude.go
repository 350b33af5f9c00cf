package api

import "github.com/plaza-dev/plaza/shared/domain"

// Request DTOs

// ExpressAttitudeRequest accepts only -1 (dislike) and 1 (like). A pointer
// keeps a missing field apart from an explicit 0, which is rejected too.
type ExpressAttitudeRequest struct {
	Attitude *int `json:"attitude" validate:"required,oneof=-1 1"`
}

// Response DTOs

type AttitudeResponse struct {
	Attitude               domain.Attitude                      `json:"attitude"`
	CommentAttitudeMapping map[domain.CommentId]domain.Attitude `json:"commentAttitudeMapping"`
}

type ExpressAttitudeResponse struct {
	Mode     string          `json:"mode"`
	Attitude domain.Attitude `json:"attitude"`
}
