package handler

import (
	"github.com/koungkub/pushco/internal/service"
	"github.com/koungkub/pushco/pkg/push"
)

type PushRequest struct {
	Message          string  `json:"message" binding:"required,max=140"`
	NotificationType *string `json:"notification_type"`
	ViewMode         *int    `json:"view_mode" binding:"omitempty,min=0,max=2"`
	Article          *string `json:"article"`
	Image            *string `json:"image"`
	URL              *string `json:"url"`
	Latitude         *string `json:"latitude"`
	Longitude        *string `json:"longitude"`
}

func (r PushRequest) toService() service.PushRequest {
	req := service.PushRequest{
		Message:          r.Message,
		NotificationType: r.NotificationType,
		Article:          r.Article,
		Image:            r.Image,
		URL:              r.URL,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
	}
	if r.ViewMode != nil {
		mode := push.ViewMode(*r.ViewMode)
		req.ViewMode = &mode
	}

	return req
}

type PushResponse struct {
	Result any `json:"result"`
}
