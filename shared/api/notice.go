package api

import "github.com/plaza-dev/plaza/shared/domain"

type NoticeListResponse struct {
	Notices []domain.Notice `json:"notices"`
}

type NotificationResponse struct {
	Counters domain.Counters `json:"counters"`
}
