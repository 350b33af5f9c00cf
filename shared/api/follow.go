package api

type FollowResponse struct {
	Following bool `json:"following"`
}
