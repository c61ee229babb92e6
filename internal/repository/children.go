package repository

import (
	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/model"
)

func addressValues(a model.Address) []any {
	return []any{a.Street, a.Number, a.Complement, a.District, a.City, a.State, a.PostalCode}
}

func phoneValues(p model.Phone) []any {
	return []any{p.Area, p.Number, p.Kind}
}

func addressID(a model.Address) int64 { return a.ID }

func phoneID(p model.Phone) int64 { return p.ID }

func socialNetworkID(l model.SocialLink) int64 { return l.SocialNetworkID }

// childAccessors selects the child lists of one root type.
type childAccessors[R any] struct {
	addresses   func(*R) []model.Address
	phones      func(*R) []model.Phone
	socialLinks func(*R) []model.SocialLink
}

// bindings declares the child collections every root carries, in sync order.
func (a childAccessors[R]) bindings(t rootTables) []aggregate.Binding[R] {
	return []aggregate.Binding[R]{
		aggregate.Collection[R, model.Address]{
			Name:  t.entity + ".addresses",
			Mode:  aggregate.MatchBySurrogate,
			Key:   addressID,
			Items: a.addresses,
			Store: newOwnedStore("address", t.addresses, t.fk, "enderecos", "endereco_id", addressColumnNames, addressValues),
		},
		aggregate.Collection[R, model.Phone]{
			Name:  t.entity + ".phones",
			Mode:  aggregate.MatchBySurrogate,
			Key:   phoneID,
			Items: a.phones,
			Store: newOwnedStore("phone", t.phones, t.fk, "telefones", "telefone_id", phoneColumnNames, phoneValues),
		},
		aggregate.Collection[R, model.SocialLink]{
			Name:  t.entity + ".social_links",
			Mode:  aggregate.MatchByNaturalKey,
			Key:   socialNetworkID,
			Items: a.socialLinks,
			Store: newSocialLinkStore(t.socialLinks, t.fk),
		},
	}
}

// childGroups declares the child column groups in the select order used by
// rootTables.selectAggregate.
func childGroups[R any](attachAddress func(*R, model.Address), attachPhone func(*R, model.Phone), attachLink func(*R, model.SocialLink)) []aggregate.ColumnGroup[R] {
	return []aggregate.ColumnGroup[R]{
		aggregate.Child[R, model.Address](&addressColumns{}, attachAddress),
		aggregate.Child[R, model.Phone](&phoneColumns{}, attachPhone),
		aggregate.Child[R, model.SocialLink](&socialLinkColumns{}, attachLink),
	}
}
