package repository

import (
	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/model"
)

// FederationRepository persists Federation aggregates with their addresses,
// phones and social links.
type FederationRepository struct {
	aggregateRepository[model.Federation]
}

func NewFederationRepository(db database.DBTX, deps aggregate.Deps) *FederationRepository {
	roots := newRootStore(federationTables,
		func(f *model.Federation) int64 { return f.ID },
		func(f *model.Federation) []any {
			return []any{f.Name, f.Acronym, f.CNPJ, f.Email, f.FoundedOn}
		},
	)

	children := childAccessors[model.Federation]{
		addresses:   func(f *model.Federation) []model.Address { return f.Addresses },
		phones:      func(f *model.Federation) []model.Phone { return f.Phones },
		socialLinks: func(f *model.Federation) []model.SocialLink { return f.SocialLinks },
	}

	return &FederationRepository{aggregateRepository[model.Federation]{
		tables: federationTables,
		db:     db,
		shape:  federationShape,
		roots:  roots,
		coord:  aggregate.NewCoordinator[model.Federation](federationTables.entity, deps, roots, children.bindings(federationTables)...),
	}}
}

func federationShape() aggregate.Shape[model.Federation] {
	return aggregate.Shape[model.Federation]{
		Name: federationTables.entity,
		Root: &federationColumns{},
		Children: childGroups[model.Federation](
			func(f *model.Federation, v model.Address) { f.Addresses = append(f.Addresses, v) },
			func(f *model.Federation, v model.Phone) { f.Phones = append(f.Phones, v) },
			func(f *model.Federation, v model.SocialLink) { f.SocialLinks = append(f.SocialLinks, v) },
		),
	}
}
