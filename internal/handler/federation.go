package handler

import (
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/service"
	"github.com/labstack/echo/v4"
)

type FederationHandler struct {
	Handler
	federations *service.FederationService
}

func NewFederationHandler(s *server.Server, federations *service.FederationService) *FederationHandler {
	return &FederationHandler{
		Handler:     NewHandler(s),
		federations: federations,
	}
}

func (h *FederationHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Federation, error) {
	return h.federations.List(c.Request().Context())
}

func (h *FederationHandler) Get(c echo.Context, req *IDRequest) (*model.Federation, error) {
	return h.federations.Get(c.Request().Context(), req.ID)
}

func (h *FederationHandler) Create(c echo.Context, req *FederationRequest) (*model.Federation, error) {
	actor, err := actorID(c)
	if err != nil {
		return nil, err
	}
	return h.federations.Create(c.Request().Context(), req.toModel(), actor)
}

// Update replaces the federation, child collections included.
func (h *FederationHandler) Update(c echo.Context, req *FederationRequest) (*model.Federation, error) {
	if req.ID <= 0 {
		return nil, &errs.NotFoundError{Entity: "federation", ID: req.ID}
	}
	actor, err := actorID(c)
	if err != nil {
		return nil, err
	}
	return h.federations.Update(c.Request().Context(), req.ID, req.toModel(), actor)
}

func (h *FederationHandler) Deactivate(c echo.Context, req *IDRequest) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	return h.federations.Deactivate(c.Request().Context(), req.ID, actor)
}
