package repository

import (
	"time"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Academy       *AcademyRepository
	Federation    *FederationRepository
	SocialNetwork *SocialNetworkRepository
}

// NewRepositories builds the repositories over the server's pool. Aggregate
// writes report to New Relic when the agent is running.
func NewRepositories(s *server.Server) *Repositories {
	deps := aggregate.Deps{
		Runner:        aggregate.NewPgxTxRunner(s.DB.Pool),
		Hooks:         aggregate.NewNewRelicHooks(s.LoggerService.GetApplication()),
		Log:           s.Logger,
		SlowThreshold: slowThreshold(s),
	}

	return &Repositories{
		Academy:       NewAcademyRepository(s.DB.Pool, deps),
		Federation:    NewFederationRepository(s.DB.Pool, deps),
		SocialNetwork: NewSocialNetworkRepository(s.DB.Pool),
	}
}

func slowThreshold(s *server.Server) time.Duration {
	if s.Config.Observability == nil {
		return 0
	}
	return s.Config.Observability.Logging.SlowQueryThreshold
}
