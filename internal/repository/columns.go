package repository

import (
	"strings"
	"time"

	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
)

// Column groups decode one table's share of an aggregate join row. Every
// group is nullable because LEFT JOINs may produce no match, and the order
// of Targets must follow the matching column list below.

var auditColumnNames = []string{"criado_por", "criado_em", "natureza_operacao", "operado_por", "operado_em", "ativo"}

var (
	addressColumnNames = []string{"logradouro", "numero", "complemento", "bairro", "cidade", "uf", "cep"}
	phoneColumnNames   = []string{"ddd", "numero", "tipo"}
)

// qualify prefixes every column with alias.
func qualify(alias string, columns ...[]string) string {
	var parts []string
	for _, group := range columns {
		for _, c := range group {
			parts = append(parts, alias+"."+c)
		}
	}
	return strings.Join(parts, ", ")
}

type auditColumns struct {
	createdBy  pgtype.Int8
	createdAt  pgtype.Timestamptz
	nature     pgtype.Text
	operatedBy pgtype.Int8
	operatedAt pgtype.Timestamptz
	active     pgtype.Bool
}

func (c *auditColumns) targets() []any {
	return []any{&c.createdBy, &c.createdAt, &c.nature, &c.operatedBy, &c.operatedAt, &c.active}
}

func (c *auditColumns) value() model.Audit {
	return model.Audit{
		CreatedBy:       c.createdBy.Int64,
		CreatedAt:       timeValue(c.createdAt),
		OperationNature: model.OperationNature(c.nature.String),
		OperatedBy:      c.operatedBy.Int64,
		OperatedAt:      timeValue(c.operatedAt),
		Active:          c.active.Bool,
	}
}

func timeValue(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time.UTC()
}

func textPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	s := t.String
	return &s
}

func int8Ptr(n pgtype.Int8) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

type addressColumns struct {
	id         pgtype.Int8
	street     pgtype.Text
	number     pgtype.Text
	complement pgtype.Text
	district   pgtype.Text
	city       pgtype.Text
	state      pgtype.Text
	postalCode pgtype.Text
	audit      auditColumns
}

func (c *addressColumns) Targets() []any {
	return append([]any{
		&c.id, &c.street, &c.number, &c.complement, &c.district, &c.city, &c.state, &c.postalCode,
	}, c.audit.targets()...)
}

func (c *addressColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }

func (c *addressColumns) Value() model.Address {
	return model.Address{
		ID:         c.id.Int64,
		Street:     c.street.String,
		Number:     c.number.String,
		Complement: textPtr(c.complement),
		District:   c.district.String,
		City:       c.city.String,
		State:      c.state.String,
		PostalCode: c.postalCode.String,
		Audit:      c.audit.value(),
	}
}

type phoneColumns struct {
	id     pgtype.Int8
	area   pgtype.Text
	number pgtype.Text
	kind   pgtype.Text
	audit  auditColumns
}

func (c *phoneColumns) Targets() []any {
	return append([]any{&c.id, &c.area, &c.number, &c.kind}, c.audit.targets()...)
}

func (c *phoneColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }

func (c *phoneColumns) Value() model.Phone {
	return model.Phone{
		ID:     c.id.Int64,
		Area:   c.area.String,
		Number: c.number.String,
		Kind:   c.kind.String,
		Audit:  c.audit.value(),
	}
}

// socialLinkColumns reads link id, rede_social_id, catalog nome, perfil, audit.
type socialLinkColumns struct {
	id        pgtype.Int8
	networkID pgtype.Int8
	network   pgtype.Text
	profile   pgtype.Text
	audit     auditColumns
}

func (c *socialLinkColumns) Targets() []any {
	return append([]any{&c.id, &c.networkID, &c.network, &c.profile}, c.audit.targets()...)
}

func (c *socialLinkColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }

func (c *socialLinkColumns) Value() model.SocialLink {
	return model.SocialLink{
		ID:                c.id.Int64,
		SocialNetworkID:   c.networkID.Int64,
		SocialNetworkName: c.network.String,
		Profile:           c.profile.String,
		Audit:             c.audit.value(),
	}
}

// academyColumns reads id, nome, cnpj, email, federacao_id, audit.
type academyColumns struct {
	id           pgtype.Int8
	name         pgtype.Text
	cnpj         pgtype.Text
	email        pgtype.Text
	federationID pgtype.Int8
	audit        auditColumns
}

var academyColumnNames = []string{"nome", "cnpj", "email", "federacao_id"}

func (c *academyColumns) Targets() []any {
	return append([]any{&c.id, &c.name, &c.cnpj, &c.email, &c.federationID}, c.audit.targets()...)
}

func (c *academyColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }

func (c *academyColumns) Value() model.Academy {
	return model.Academy{
		ID:           c.id.Int64,
		Name:         c.name.String,
		CNPJ:         c.cnpj.String,
		Email:        textPtr(c.email),
		FederationID: int8Ptr(c.federationID),
		Audit:        c.audit.value(),
	}
}

// federationColumns reads id, nome, sigla, cnpj, email, data_fundacao, audit.
type federationColumns struct {
	id        pgtype.Int8
	name      pgtype.Text
	acronym   pgtype.Text
	cnpj      pgtype.Text
	email     pgtype.Text
	foundedOn pgtype.Date
	audit     auditColumns
}

var federationColumnNames = []string{"nome", "sigla", "cnpj", "email", "data_fundacao"}

func (c *federationColumns) Targets() []any {
	return append([]any{&c.id, &c.name, &c.acronym, &c.cnpj, &c.email, &c.foundedOn}, c.audit.targets()...)
}

func (c *federationColumns) ID() (int64, bool) { return c.id.Int64, c.id.Valid }

func (c *federationColumns) Value() model.Federation {
	var foundedOn *time.Time
	if c.foundedOn.Valid {
		d := c.foundedOn.Time
		foundedOn = &d
	}
	return model.Federation{
		ID:        c.id.Int64,
		Name:      c.name.String,
		Acronym:   c.acronym.String,
		CNPJ:      c.cnpj.String,
		Email:     textPtr(c.email),
		FoundedOn: foundedOn,
		Audit:     c.audit.value(),
	}
}
