package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tupyy/property-search-agent/internal/models"
)

// ConfigurationStore handles the service configuration using DuckDB.
type ConfigurationStore struct {
	db *sql.DB
}

func NewConfigurationStore(db *sql.DB) *ConfigurationStore {
	return &ConfigurationStore{db: db}
}

// Get retrieves the stored configuration.
func (s *ConfigurationStore) Get(ctx context.Context) (*models.AdminConfiguration, error) {
	row := s.db.QueryRowContext(ctx, queryGetConfiguration)

	var (
		c     models.AdminConfiguration
		codes string
	)
	err := row.Scan(&c.APIKey, &codes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	c.MunicipalityCodes = models.SplitCodes(codes)

	return &c, nil
}

// Save stores or updates the configuration.
func (s *ConfigurationStore) Save(ctx context.Context, cfg *models.AdminConfiguration) error {
	_, err := s.db.ExecContext(ctx, queryUpsertConfiguration,
		cfg.APIKey, strings.Join(cfg.MunicipalityCodes, ","), cfg.IsActive)
	return err
}

// Delete removes the stored configuration.
func (s *ConfigurationStore) Delete(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, queryDeleteConfiguration)
	return err
}
