package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/aggregate/aggregatetest"
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stampedAt = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

func audit(active bool) []any {
	return []any{int64(1), stampedAt, "I", int64(1), stampedAt, active}
}

func nullAudit() []any { return []any{nil, nil, nil, nil, nil, nil} }

func academyRoot(id int64, name string) []any {
	return append([]any{id, name, "12345678000190", nil, int64(3)}, audit(true)...)
}

func addressGroup(id int64, street string) []any {
	return append([]any{id, street, "10", nil, "Centro", "Recife", "PE", "50000000"}, audit(true)...)
}

func nullAddress() []any {
	return append([]any{nil, nil, nil, nil, nil, nil, nil, nil}, nullAudit()...)
}

func phoneGroup(id int64, number string) []any {
	return append([]any{id, "81", number, "mobile"}, audit(true)...)
}

func nullPhone() []any { return append([]any{nil, nil, nil, nil}, nullAudit()...) }

func linkGroup(id, networkID int64, network, profile string) []any {
	return append([]any{id, networkID, network, profile}, audit(true)...)
}

func nullLink() []any { return append([]any{nil, nil, nil, nil}, nullAudit()...) }

func joined(groups ...[]any) []any {
	var out []any
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func TestAcademyShapeFoldsFanOut(t *testing.T) {
	var data [][]any
	for _, a := range []int64{10, 11, 12} {
		for _, p := range []int64{20, 21} {
			data = append(data, joined(
				academyRoot(1, "Dojo"),
				addressGroup(a, "Rua "+string(rune('A'+a-10))),
				phoneGroup(p, "9999-000"+string(rune('0'+p-20))),
				linkGroup(30, 1, "Instagram", "@dojo"),
			))
		}
	}

	assembled, err := aggregate.Assemble(&aggregatetest.Rows{Data: data}, academyShape())
	require.NoError(t, err)

	academy, ok := assembled.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Dojo", academy.Name)
	assert.Nil(t, academy.Email)
	require.NotNil(t, academy.FederationID)
	assert.Equal(t, int64(3), *academy.FederationID)
	assert.Equal(t, model.OperationInsert, academy.OperationNature)
	assert.Equal(t, stampedAt, academy.OperatedAt)

	require.Len(t, academy.Addresses, 3)
	assert.Equal(t, []int64{10, 11, 12}, []int64{academy.Addresses[0].ID, academy.Addresses[1].ID, academy.Addresses[2].ID})
	assert.Equal(t, "Rua A", academy.Addresses[0].Street)
	assert.Nil(t, academy.Addresses[0].Complement)

	require.Len(t, academy.Phones, 2)
	require.Len(t, academy.SocialLinks, 1)
	assert.Equal(t, model.SocialLink{
		ID:                30,
		SocialNetworkID:   1,
		SocialNetworkName: "Instagram",
		Profile:           "@dojo",
		Audit:             academy.SocialLinks[0].Audit,
	}, academy.SocialLinks[0])
}

func TestAcademyShapeWithoutChildren(t *testing.T) {
	rows := &aggregatetest.Rows{Data: [][]any{
		joined(academyRoot(5, "Solo"), nullAddress(), nullPhone(), nullLink()),
	}}

	assembled, err := aggregate.Assemble(rows, academyShape())
	require.NoError(t, err)

	academy, ok := assembled.Get(5)
	require.True(t, ok)
	assert.Empty(t, academy.Addresses)
	assert.Empty(t, academy.Phones)
	assert.Empty(t, academy.SocialLinks)
}

func TestFederationShapeDecodesFoundedOn(t *testing.T) {
	founded := time.Date(1998, 7, 1, 0, 0, 0, 0, time.UTC)
	root := append([]any{int64(2), "Federação Pernambucana", "FPJ", "11222333000144", "contato@fpj.org", founded}, audit(false)...)

	assembled, err := aggregate.Assemble(&aggregatetest.Rows{Data: [][]any{
		joined(root, nullAddress(), nullPhone(), nullLink()),
	}}, federationShape())
	require.NoError(t, err)

	federation, ok := assembled.Get(2)
	require.True(t, ok)
	assert.Equal(t, "FPJ", federation.Acronym)
	require.NotNil(t, federation.FoundedOn)
	assert.True(t, founded.Equal(*federation.FoundedOn))
	require.NotNil(t, federation.Email)
	assert.Equal(t, "contato@fpj.org", *federation.Email)
	assert.False(t, federation.Active)
}

func TestSelectAggregateMatchesShape(t *testing.T) {
	for name, tc := range map[string]struct {
		tables  rootTables
		targets int
	}{
		"academy":    {academyTables, len((&academyColumns{}).Targets()) + childTargets()},
		"federation": {federationTables, len((&federationColumns{}).Targets()) + childTargets()},
	} {
		t.Run(name, func(t *testing.T) {
			query := tc.tables.selectAggregate("r.id = $1", "r.id")

			selectList := query[len("SELECT "):strings.Index(query, "\nFROM")]
			assert.Equal(t, tc.targets, len(strings.Split(selectList, ",")), "one column per scan target")

			assert.Contains(t, query, "FROM "+tc.tables.table+" r")
			assert.Contains(t, query, "LEFT JOIN "+tc.tables.addresses+" re ON re."+tc.tables.fk+" = r.id AND re.ativo")
			assert.Contains(t, query, "LEFT JOIN "+tc.tables.socialLinks+" sl ON sl."+tc.tables.fk+" = r.id AND sl.ativo")
			assert.True(t, strings.HasSuffix(query, "ORDER BY r.id, e.id, p.id, sl.id"))
		})
	}
}

func childTargets() int {
	return len((&addressColumns{}).Targets()) +
		len((&phoneColumns{}).Targets()) +
		len((&socialLinkColumns{}).Targets())
}

func TestRootStoreSQL(t *testing.T) {
	store := newRootStore(academyTables,
		func(a *model.Academy) int64 { return a.ID },
		func(a *model.Academy) []any { return []any{a.Name, a.CNPJ, a.Email, a.FederationID} },
	)

	assert.Contains(t, store.insertSQL, "INSERT INTO academias (nome, cnpj, email, federacao_id, criado_por")
	assert.Contains(t, store.insertSQL, "VALUES ($1, $2, $3, $4, $5, $6, 'I', $5, $6, true)")
	assert.Contains(t, store.updateSQL, "SET nome = $2, cnpj = $3, email = $4, federacao_id = $5, natureza_operacao = 'U', operado_por = $6, operado_em = $7")
	assert.Contains(t, store.deactivateSQL, "ativo = false, natureza_operacao = 'D'")
}

func TestOwnedStoreSQLIsScopedToRoot(t *testing.T) {
	store := newOwnedStore("phone", "academia_telefones", "academia_id", "telefones", "telefone_id", phoneColumnNames, phoneValues)

	assert.Equal(t, "SELECT telefone_id FROM academia_telefones WHERE academia_id = $1 AND ativo ORDER BY telefone_id", store.currentSQL)
	assert.Contains(t, store.updateSQL, "SET ddd = $3, numero = $4, tipo = $5, natureza_operacao = 'U', operado_por = $6, operado_em = $7")
	assert.Contains(t, store.updateSQL, "id IN (SELECT telefone_id FROM academia_telefones WHERE academia_id = $2 AND ativo)")
	assert.Equal(t, "DELETE FROM academia_telefones WHERE academia_id = $1 AND telefone_id = $2", store.unlinkSQL)
}

func TestPlaceholdersAndAssignments(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholders(1, 3))
	assert.Equal(t, "", placeholders(4, 0))
	assert.Equal(t, "a = $2, b = $3", assignments(2, []string{"a", "b"}))
	assert.Equal(t, "x.a, x.b, x.c", qualify("x", []string{"a"}, []string{"b", "c"}))
}
