package service

import (
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/rs/zerolog"
)

type AcademyService struct {
	aggregateService[model.Academy]
}

func NewAcademyService(logger *zerolog.Logger, store AggregateStore[model.Academy]) *AcademyService {
	return &AcademyService{aggregateService[model.Academy]{
		entity:    "academy",
		logger:    logger,
		store:     store,
		normalize: normalizeAcademy,
		setID:     func(a *model.Academy, id int64) { a.ID = id },
	}}
}
