package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/tupyy/property-search-agent/internal/models"
)

// MunicipalityStore handles the municipality reference table.
type MunicipalityStore struct {
	db *sql.DB
}

func NewMunicipalityStore(db *sql.DB) *MunicipalityStore {
	return &MunicipalityStore{db: db}
}

// List returns the municipalities with the given codes, ordered by name.
// All municipalities are returned when codes is nil.
func (s *MunicipalityStore) List(ctx context.Context, codes []string) ([]models.ReferenceEntity, error) {
	builder := qb.Select("code", "name").From("municipalities").OrderBy("name")
	if codes != nil {
		builder = builder.Where(sq.Eq{"code": codes})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build municipalities query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query municipalities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	municipalities := []models.ReferenceEntity{}
	for rows.Next() {
		var m models.ReferenceEntity
		if err := rows.Scan(&m.Value, &m.Label); err != nil {
			return nil, fmt.Errorf("scan municipality: %w", err)
		}
		municipalities = append(municipalities, m)
	}

	return municipalities, rows.Err()
}

// Save stores or renames a municipality.
func (s *MunicipalityStore) Save(ctx context.Context, m models.ReferenceEntity) error {
	_, err := s.db.ExecContext(ctx, queryUpsertMunicipality, m.Value, m.Label)
	return err
}
