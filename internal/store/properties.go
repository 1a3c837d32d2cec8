package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/tupyy/property-search-agent/internal/models"
)

// MaxSearchResults caps the number of records returned by a single search.
const MaxSearchResults = 200

var propertyColumns = []string{
	"p.id",
	"p.collection",
	"p.municipality_code",
	"COALESCE(m.name, p.municipality_code)",
	"p.matricule",
	"p.lot_number",
	"p.civic_number",
	"p.street_name",
	"p.postal_code",
	"p.owner_first_name",
	"p.owner_last_name",
	"p.assessed_value",
	"p.land_area",
	"p.year_built",
	"p.created_at",
}

// PropertyStore handles property records using DuckDB.
type PropertyStore struct {
	db *sql.DB
}

func NewPropertyStore(db *sql.DB) *PropertyStore {
	return &PropertyStore{db: db}
}

// Search returns the records matching the criteria. Only the fields of the
// criteria's search type are used as filters.
func (s *PropertyStore) Search(ctx context.Context, criteria models.SearchCriteria) ([]models.PropertyRecord, error) {
	builder := qb.Select(propertyColumns...).
		From("properties p").
		LeftJoin("municipalities m ON m.code = p.municipality_code").
		OrderBy("p.street_name", "p.civic_number", "p.matricule").
		Limit(MaxSearchResults)

	switch criteria.Scope() {
	case models.ScopeCollection:
		builder = builder.Where(sq.Eq{"p.collection": criteria.Collection})
	default:
		builder = builder.Where(sq.Eq{"p.municipality_code": criteria.Municipality})
	}

	switch criteria.Type {
	case models.SearchTypeAddress:
		builder = builder.Where(sq.ILike{"p.street_name": "%" + strings.TrimSpace(criteria.StreetName) + "%"}).
			Where(sq.Eq{"p.civic_number": strings.TrimSpace(criteria.CivicNumber)})
	case models.SearchTypeOwner:
		builder = builder.Where(sq.ILike{"p.owner_first_name": strings.TrimSpace(criteria.OwnerFirstName) + "%"}).
			Where(sq.ILike{"p.owner_last_name": strings.TrimSpace(criteria.OwnerLastName) + "%"})
	case models.SearchTypeLot:
		builder = builder.Where(sq.Eq{"replace(p.lot_number, ' ', '')": normalizeLot(criteria.LotNumber)})
	case models.SearchTypeMatricule:
		builder = builder.Where(sq.Eq{"p.matricule": strings.TrimSpace(criteria.Matricule)})
	default:
		return nil, fmt.Errorf("unsupported search type %q", criteria.Type)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build property query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []models.PropertyRecord{}
	for rows.Next() {
		var r models.PropertyRecord
		if err := rows.Scan(
			&r.ID,
			&r.Collection,
			&r.MunicipalityCode,
			&r.MunicipalityName,
			&r.Matricule,
			&r.LotNumber,
			&r.CivicNumber,
			&r.StreetName,
			&r.PostalCode,
			&r.OwnerFirstName,
			&r.OwnerLastName,
			&r.AssessedValue,
			&r.LandArea,
			&r.YearBuilt,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan property: %w", err)
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Collections returns the distinct collection names.
func (s *PropertyStore) Collections(ctx context.Context) ([]models.ReferenceEntity, error) {
	rows, err := s.db.QueryContext(ctx, queryListCollections)
	if err != nil {
		return nil, fmt.Errorf("query collections: %w", err)
	}
	defer func() { _ = rows.Close() }()

	collections := []models.ReferenceEntity{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan collection: %w", err)
		}
		collections = append(collections, models.ReferenceEntity{Value: name, Label: name})
	}

	return collections, rows.Err()
}

// Insert stores the records in a single transaction. Existing records with
// the same ID are replaced.
func (s *PropertyStore) Insert(ctx context.Context, records ...models.PropertyRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, queryInsertProperty)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx,
			r.ID,
			r.Collection,
			r.MunicipalityCode,
			r.Matricule,
			r.LotNumber,
			r.CivicNumber,
			r.StreetName,
			r.PostalCode,
			r.OwnerFirstName,
			r.OwnerLastName,
			r.AssessedValue,
			r.LandArea,
			r.YearBuilt,
		); err != nil {
			return fmt.Errorf("inserting property %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

func normalizeLot(lot string) string {
	return strings.ReplaceAll(strings.TrimSpace(lot), " ", "")
}
