package handler

import (
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/service"
	"github.com/labstack/echo/v4"
)

type SocialNetworkHandler struct {
	Handler
	networks *service.SocialNetworkService
}

func NewSocialNetworkHandler(s *server.Server, networks *service.SocialNetworkService) *SocialNetworkHandler {
	return &SocialNetworkHandler{
		Handler:  NewHandler(s),
		networks: networks,
	}
}

func (h *SocialNetworkHandler) List(c echo.Context, _ *EmptyRequest) ([]model.SocialNetwork, error) {
	return h.networks.List(c.Request().Context())
}
