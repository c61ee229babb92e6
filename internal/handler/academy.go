package handler

import (
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/service"
	"github.com/labstack/echo/v4"
)

type AcademyHandler struct {
	Handler
	academies *service.AcademyService
}

func NewAcademyHandler(s *server.Server, academies *service.AcademyService) *AcademyHandler {
	return &AcademyHandler{
		Handler:   NewHandler(s),
		academies: academies,
	}
}

func (h *AcademyHandler) List(c echo.Context, _ *EmptyRequest) ([]*model.Academy, error) {
	return h.academies.List(c.Request().Context())
}

func (h *AcademyHandler) Get(c echo.Context, req *IDRequest) (*model.Academy, error) {
	return h.academies.Get(c.Request().Context(), req.ID)
}

func (h *AcademyHandler) Create(c echo.Context, req *AcademyRequest) (*model.Academy, error) {
	actor, err := actorID(c)
	if err != nil {
		return nil, err
	}
	return h.academies.Create(c.Request().Context(), req.toModel(), actor)
}

// Update replaces the academy, child collections included.
func (h *AcademyHandler) Update(c echo.Context, req *AcademyRequest) (*model.Academy, error) {
	if req.ID <= 0 {
		return nil, &errs.NotFoundError{Entity: "academy", ID: req.ID}
	}
	actor, err := actorID(c)
	if err != nil {
		return nil, err
	}
	return h.academies.Update(c.Request().Context(), req.ID, req.toModel(), actor)
}

func (h *AcademyHandler) Deactivate(c echo.Context, req *IDRequest) error {
	actor, err := actorID(c)
	if err != nil {
		return err
	}
	return h.academies.Deactivate(c.Request().Context(), req.ID, actor)
}
