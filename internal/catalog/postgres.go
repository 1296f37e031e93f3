package catalog

import (
	"context"
	"database/sql"

	"github.com/DukeRupert/booking/internal/domain"
)

const listIntegrationsQuery = `SELECT id, name, color, icon FROM integrations ORDER BY position, id`

// Postgres reads the catalog from the integrations table.
//
// The table is created and seeded by the goose migrations in
// internal/migrations. Rows are read on every call; the table is small and
// edited out of band.
type Postgres struct {
	db *sql.DB
}

// NewPostgres creates a catalog backed by db.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// List returns all integrations ordered by position.
func (p *Postgres) List(ctx context.Context) ([]domain.Integration, error) {
	const op = "catalog.list"

	rows, err := p.db.QueryContext(ctx, listIntegrationsQuery)
	if err != nil {
		return nil, domain.Internal(err, op, "failed to query integrations")
	}
	defer rows.Close()

	var integrations []domain.Integration
	for rows.Next() {
		var i domain.Integration
		if err := rows.Scan(&i.ID, &i.Name, &i.Color, &i.Icon); err != nil {
			return nil, domain.Internal(err, op, "failed to scan integration")
		}
		integrations = append(integrations, i)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internal(err, op, "failed to read integrations")
	}

	return integrations, nil
}
