package api

type SaveResponse struct {
	Saved bool `json:"saved"`
}
