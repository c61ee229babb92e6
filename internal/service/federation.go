package service

import (
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/rs/zerolog"
)

type FederationService struct {
	aggregateService[model.Federation]
}

func NewFederationService(logger *zerolog.Logger, store AggregateStore[model.Federation]) *FederationService {
	return &FederationService{aggregateService[model.Federation]{
		entity:    "federation",
		logger:    logger,
		store:     store,
		normalize: normalizeFederation,
		setID:     func(f *model.Federation, id int64) { f.ID = id },
	}}
}
