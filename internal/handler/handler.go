package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koungkub/pushco/internal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("handler",
	fx.Provide(
		NewPushHandler,
	),
)

type Push struct {
	services service.PushProvider
}

type PushParams struct {
	fx.In

	Services service.PushProvider
}

func NewPushHandler(params PushParams) *Push {
	return &Push{
		services: params.Services,
	}
}

func (p *Push) PushHandler(c *gin.Context) {
	ctx := c.Request.Context()

	var req PushRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	result, err := p.services.Send(ctx, c.Param("app"), req.toService())
	if err != nil {
		status, body := GetSendError(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, PushResponse{Result: result})
}
