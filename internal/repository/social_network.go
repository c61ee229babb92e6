package repository

import (
	"context"

	"github.com/deppfellow/sports-federation/internal/database"
	"github.com/deppfellow/sports-federation/internal/model"
	"github.com/deppfellow/sports-federation/internal/sqlerr"
	"github.com/jackc/pgx/v5"
)

// SocialNetworkRepository reads the social network catalog.
type SocialNetworkRepository struct {
	db database.DBTX
}

func NewSocialNetworkRepository(db database.DBTX) *SocialNetworkRepository {
	return &SocialNetworkRepository{db: db}
}

func (r *SocialNetworkRepository) List(ctx context.Context) ([]model.SocialNetwork, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nome FROM redes_sociais ORDER BY nome`)
	if err != nil {
		return nil, sqlerr.Classify("social_network.list", err)
	}

	networks, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.SocialNetwork])
	if err != nil {
		return nil, sqlerr.Classify("social_network.list", err)
	}
	return networks, nil
}
