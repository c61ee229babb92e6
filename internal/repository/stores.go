package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/deppfellow/sports-federation/internal/aggregate"
	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/errs"
	"github.com/deppfellow/sports-federation/internal/model"
)

// rootTables names the tables that make up one aggregate root.
type rootTables struct {
	entity      string
	table       string
	fk          string
	columns     []string
	addresses   string
	phones      string
	socialLinks string
}

var academyTables = rootTables{
	entity:      "academy",
	table:       "academias",
	fk:          "academia_id",
	columns:     academyColumnNames,
	addresses:   "academia_enderecos",
	phones:      "academia_telefones",
	socialLinks: "academia_redes_sociais",
}

var federationTables = rootTables{
	entity:      "federation",
	table:       "federacoes",
	fk:          "federacao_id",
	columns:     federationColumnNames,
	addresses:   "federacao_enderecos",
	phones:      "federacao_telefones",
	socialLinks: "federacao_redes_sociais",
}

// selectAggregate builds the join read by Get and List. Column order matches
// the root group followed by address, phone and social link groups.
func (t rootTables) selectAggregate(where, orderBy string) string {
	return fmt.Sprintf(`SELECT r.id, %s,
       e.id, %s,
       p.id, %s,
       sl.id, sl.rede_social_id, rs.nome, sl.perfil, %s
FROM %s r
LEFT JOIN %s re ON re.%s = r.id AND re.ativo
LEFT JOIN enderecos e ON e.id = re.endereco_id
LEFT JOIN %s rp ON rp.%s = r.id AND rp.ativo
LEFT JOIN telefones p ON p.id = rp.telefone_id
LEFT JOIN %s sl ON sl.%s = r.id AND sl.ativo
LEFT JOIN redes_sociais rs ON rs.id = sl.rede_social_id
WHERE %s
ORDER BY %s, e.id, p.id, sl.id`,
		qualify("r", t.columns, auditColumnNames),
		qualify("e", addressColumnNames, auditColumnNames),
		qualify("p", phoneColumnNames, auditColumnNames),
		qualify("sl", auditColumnNames),
		t.table,
		t.addresses, t.fk,
		t.phones, t.fk,
		t.socialLinks, t.fk,
		where,
		orderBy,
	)
}

// placeholders returns "$from, ..., $from+n-1".
func placeholders(from, n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}

// assignments returns "c1 = $from, c2 = $from+1, ...".
func assignments(from int, columns []string) string {
	parts := make([]string, len(columns))
	for i, c := range columns {
		parts[i] = fmt.Sprintf("%s = $%d", c, from+i)
	}
	return strings.Join(parts, ", ")
}

// rootStore writes the root row of an aggregate.
type rootStore[R any] struct {
	entity        string
	id            func(*R) int64
	values        func(*R) []any
	insertSQL     string
	updateSQL     string
	deactivateSQL string
}

var _ aggregate.RootStore[int] = (*rootStore[int])(nil)

func newRootStore[R any](t rootTables, id func(*R) int64, values func(*R) []any) *rootStore[R] {
	n := len(t.columns)
	return &rootStore[R]{
		entity: t.entity,
		id:     id,
		values: values,
		insertSQL: fmt.Sprintf(
			`INSERT INTO %s (%s, criado_por, criado_em, natureza_operacao, operado_por, operado_em, ativo)
VALUES (%s, $%d, $%d, 'I', $%d, $%d, true)
RETURNING id`,
			t.table, strings.Join(t.columns, ", "), placeholders(1, n), n+1, n+2, n+1, n+2),
		updateSQL: fmt.Sprintf(
			`UPDATE %s SET %s, natureza_operacao = 'U', operado_por = $%d, operado_em = $%d
WHERE id = $1`,
			t.table, assignments(2, t.columns), n+2, n+3),
		deactivateSQL: fmt.Sprintf(
			`UPDATE %s SET ativo = false, natureza_operacao = 'D', operado_por = $2, operado_em = $3
WHERE id = $1`,
			t.table),
	}
}

func (s *rootStore[R]) ID(root *R) int64 { return s.id(root) }

func (s *rootStore[R]) Insert(ctx context.Context, tx database.DBTX, root *R, stamp aggregate.Stamp) (int64, error) {
	args := append(s.values(root), stamp.ActorID, stamp.At)
	var id int64
	if err := tx.QueryRow(ctx, s.insertSQL, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *rootStore[R]) Update(ctx context.Context, tx database.DBTX, root *R, stamp aggregate.Stamp) error {
	id := s.id(root)
	args := append([]any{id}, s.values(root)...)
	args = append(args, stamp.ActorID, stamp.At)

	tag, err := tx.Exec(ctx, s.updateSQL, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &errs.NotFoundError{Entity: s.entity, ID: id}
	}
	return nil
}

// Deactivate soft-deletes the root. Children are left untouched.
func (s *rootStore[R]) Deactivate(ctx context.Context, tx database.DBTX, id int64, stamp aggregate.Stamp) error {
	tag, err := tx.Exec(ctx, s.deactivateSQL, id, stamp.ActorID, stamp.At)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &errs.NotFoundError{Entity: s.entity, ID: id}
	}
	return nil
}

// ownedStore persists a child owned by one root through a link table:
// a child row in childTable plus a link row (rootFK, childFK) in linkTable.
type ownedStore[C any] struct {
	entity         string
	values         func(C) []any
	currentSQL     string
	insertChildSQL string
	insertLinkSQL  string
	updateSQL      string
	unlinkSQL      string
	deleteSQL      string
}

var _ aggregate.ChildStore[int] = (*ownedStore[int])(nil)

func newOwnedStore[C any](entity, linkTable, rootFK, childTable, childFK string, columns []string, values func(C) []any) *ownedStore[C] {
	n := len(columns)
	return &ownedStore[C]{
		entity: entity,
		values: values,
		currentSQL: fmt.Sprintf(
			`SELECT %s FROM %s WHERE %s = $1 AND ativo ORDER BY %s`,
			childFK, linkTable, rootFK, childFK),
		insertChildSQL: fmt.Sprintf(
			`INSERT INTO %s (%s, criado_por, criado_em, natureza_operacao, operado_por, operado_em, ativo)
VALUES (%s, $%d, $%d, 'I', $%d, $%d, true)
RETURNING id`,
			childTable, strings.Join(columns, ", "), placeholders(1, n), n+1, n+2, n+1, n+2),
		insertLinkSQL: fmt.Sprintf(
			`INSERT INTO %s (%s, %s, criado_por, criado_em, natureza_operacao, operado_por, operado_em, ativo)
VALUES ($1, $2, $3, $4, 'I', $3, $4, true)`,
			linkTable, rootFK, childFK),
		// The subquery scopes the update to children linked to this root.
		updateSQL: fmt.Sprintf(
			`UPDATE %s SET %s, natureza_operacao = 'U', operado_por = $%d, operado_em = $%d
WHERE id = $1 AND id IN (SELECT %s FROM %s WHERE %s = $2 AND ativo)`,
			childTable, assignments(3, columns), n+3, n+4, childFK, linkTable, rootFK),
		unlinkSQL: fmt.Sprintf(
			`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			linkTable, rootFK, childFK),
		deleteSQL: fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, childTable),
	}
}

func (s *ownedStore[C]) Current(ctx context.Context, tx database.DBTX, rootID int64) ([]aggregate.Current, error) {
	rows, err := tx.Query(ctx, s.currentSQL, rootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []aggregate.Current
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, aggregate.Current{Key: id, ID: id})
	}
	return out, rows.Err()
}

func (s *ownedStore[C]) Insert(ctx context.Context, tx database.DBTX, rootID int64, child C, stamp aggregate.Stamp) (int64, error) {
	args := append(s.values(child), stamp.ActorID, stamp.At)
	var id int64
	if err := tx.QueryRow(ctx, s.insertChildSQL, args...).Scan(&id); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(ctx, s.insertLinkSQL, rootID, id, stamp.ActorID, stamp.At); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *ownedStore[C]) Update(ctx context.Context, tx database.DBTX, rootID, id int64, child C, stamp aggregate.Stamp) error {
	args := append([]any{id, rootID}, s.values(child)...)
	args = append(args, stamp.ActorID, stamp.At)

	tag, err := tx.Exec(ctx, s.updateSQL, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &errs.NotFoundError{Entity: s.entity, ID: id}
	}
	return nil
}

func (s *ownedStore[C]) Delete(ctx context.Context, tx database.DBTX, rootID, id int64) error {
	tag, err := tx.Exec(ctx, s.unlinkSQL, rootID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &errs.NotFoundError{Entity: s.entity, ID: id}
	}
	_, err = tx.Exec(ctx, s.deleteSQL, id)
	return err
}

// socialLinkStore persists links to the social network catalog. Links are
// matched by rede_social_id; the catalog itself is never written.
type socialLinkStore struct {
	currentSQL string
	insertSQL  string
	updateSQL  string
	deleteSQL  string
}

var _ aggregate.ChildStore[model.SocialLink] = (*socialLinkStore)(nil)

func newSocialLinkStore(linkTable, rootFK string) *socialLinkStore {
	return &socialLinkStore{
		currentSQL: fmt.Sprintf(
			`SELECT id, rede_social_id FROM %s WHERE %s = $1 AND ativo ORDER BY id`,
			linkTable, rootFK),
		insertSQL: fmt.Sprintf(
			`INSERT INTO %s (%s, rede_social_id, perfil, criado_por, criado_em, natureza_operacao, operado_por, operado_em, ativo)
VALUES ($1, $2, $3, $4, $5, 'I', $4, $5, true)
RETURNING id`,
			linkTable, rootFK),
		updateSQL: fmt.Sprintf(
			`UPDATE %s SET perfil = $3, natureza_operacao = 'U', operado_por = $4, operado_em = $5
WHERE id = $1 AND %s = $2`,
			linkTable, rootFK),
		deleteSQL: fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND %s = $2`, linkTable, rootFK),
	}
}

func (s *socialLinkStore) Current(ctx context.Context, tx database.DBTX, rootID int64) ([]aggregate.Current, error) {
	rows, err := tx.Query(ctx, s.currentSQL, rootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []aggregate.Current
	for rows.Next() {
		var c aggregate.Current
		if err := rows.Scan(&c.ID, &c.Key); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *socialLinkStore) Insert(ctx context.Context, tx database.DBTX, rootID int64, link model.SocialLink, stamp aggregate.Stamp) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, s.insertSQL, rootID, link.SocialNetworkID, link.Profile, stamp.ActorID, stamp.At).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *socialLinkStore) Update(ctx context.Context, tx database.DBTX, rootID, id int64, link model.SocialLink, stamp aggregate.Stamp) error {
	tag, err := tx.Exec(ctx, s.updateSQL, id, rootID, link.Profile, stamp.ActorID, stamp.At)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &errs.NotFoundError{Entity: "social link", ID: id}
	}
	return nil
}

func (s *socialLinkStore) Delete(ctx context.Context, tx database.DBTX, rootID, id int64) error {
	tag, err := tx.Exec(ctx, s.deleteSQL, id, rootID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &errs.NotFoundError{Entity: "social link", ID: id}
	}
	return nil
}
