package service

import (
	"context"

	"github.com/deppfellow/sports-federation/internal/model"
)

// SocialNetworkCatalog lists the networks a root may link to.
type SocialNetworkCatalog interface {
	List(ctx context.Context) ([]model.SocialNetwork, error)
}

type SocialNetworkService struct {
	catalog SocialNetworkCatalog
}

func NewSocialNetworkService(catalog SocialNetworkCatalog) *SocialNetworkService {
	return &SocialNetworkService{catalog: catalog}
}

func (s *SocialNetworkService) List(ctx context.Context) ([]model.SocialNetwork, error) {
	return s.catalog.List(ctx)
}
