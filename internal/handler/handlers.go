package handler

import (
	"github.com/deppfellow/sports-federation/internal/server"
	"github.com/deppfellow/sports-federation/internal/service"
)

// Handlers groups all HTTP handlers.
type Handlers struct {
	Health        *HealthHandler
	Academy       *AcademyHandler
	Federation    *FederationHandler
	SocialNetwork *SocialNetworkHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		Academy:       NewAcademyHandler(s, services.Academy),
		Federation:    NewFederationHandler(s, services.Federation),
		SocialNetwork: NewSocialNetworkHandler(s, services.SocialNetwork),
	}
}
