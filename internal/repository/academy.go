package repository

import (
	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/model"
)

// AcademyRepository persists Academy aggregates with their addresses, phones
// and social links.
type AcademyRepository struct {
	aggregateRepository[model.Academy]
}

func NewAcademyRepository(db database.DBTX, deps aggregate.Deps) *AcademyRepository {
	roots := newRootStore(academyTables,
		func(a *model.Academy) int64 { return a.ID },
		func(a *model.Academy) []any {
			return []any{a.Name, a.CNPJ, a.Email, a.FederationID}
		},
	)

	children := childAccessors[model.Academy]{
		addresses:   func(a *model.Academy) []model.Address { return a.Addresses },
		phones:      func(a *model.Academy) []model.Phone { return a.Phones },
		socialLinks: func(a *model.Academy) []model.SocialLink { return a.SocialLinks },
	}

	return &AcademyRepository{aggregateRepository[model.Academy]{
		tables: academyTables,
		db:     db,
		shape:  academyShape,
		roots:  roots,
		coord:  aggregate.NewCoordinator[model.Academy](academyTables.entity, deps, roots, children.bindings(academyTables)...),
	}}
}

func academyShape() aggregate.Shape[model.Academy] {
	return aggregate.Shape[model.Academy]{
		Name: academyTables.entity,
		Root: &academyColumns{},
		Children: childGroups[model.Academy](
			func(a *model.Academy, v model.Address) { a.Addresses = append(a.Addresses, v) },
			func(a *model.Academy, v model.Phone) { a.Phones = append(a.Phones, v) },
			func(a *model.Academy, v model.SocialLink) { a.SocialLinks = append(a.SocialLinks, v) },
		),
	}
}
