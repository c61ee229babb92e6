package service

import (
	"github.com/deppfellow/sports-federation/internal/repository"
	"github.com/deppfellow/sports-federation/internal/server"
)

type Services struct {
	Auth          *AuthService
	Academy       *AcademyService
	Federation    *FederationService
	SocialNetwork *SocialNetworkService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:          NewAuthService(s.Config.Auth.SecretKey),
		Academy:       NewAcademyService(s.Logger, repos.Academy),
		Federation:    NewFederationService(s.Logger, repos.Federation),
		SocialNetwork: NewSocialNetworkService(repos.SocialNetwork),
	}, nil
}
