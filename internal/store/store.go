package store

import (
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("not found")

// qb builds DuckDB statements with ? placeholders.
var qb = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Store provides access to all storage repositories.
type Store struct {
	db             *sql.DB
	configuration  *ConfigurationStore
	municipalities *MunicipalityStore
	properties     *PropertyStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:             db,
		configuration:  NewConfigurationStore(db),
		municipalities: NewMunicipalityStore(db),
		properties:     NewPropertyStore(db),
	}
}

func (s *Store) Configuration() *ConfigurationStore {
	return s.configuration
}

func (s *Store) Municipalities() *MunicipalityStore {
	return s.municipalities
}

func (s *Store) Properties() *PropertyStore {
	return s.properties
}

func (s *Store) Close() error {
	return s.db.Close()
}
