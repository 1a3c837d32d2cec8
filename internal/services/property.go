package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/store"
	"github.com/tupyy/property-search-agent/internal/validation"
)

var (
	ErrNotConfigured             = errors.New("service is not configured")
	ErrMunicipalityNotAuthorized = errors.New("municipality is not authorized")
)

// PropertyService serves the property queries and the administration
// commands from the local store.
type PropertyService struct {
	store  *store.Store
	prober ConnectionProber
}

func NewPropertyService(st *store.Store, prober ConnectionProber) *PropertyService {
	return &PropertyService{store: st, prober: prober}
}

// IsConfigured reports whether an active configuration with an API key is stored.
func (p *PropertyService) IsConfigured(ctx context.Context) (bool, error) {
	cfg, err := p.configuration(ctx)
	if err != nil {
		return false, err
	}
	return cfg != nil && cfg.IsActive && cfg.APIKey != "", nil
}

// Configuration returns the stored configuration or nil when none was saved.
func (p *PropertyService) Configuration(ctx context.Context) (*models.AdminConfiguration, error) {
	return p.configuration(ctx)
}

// ListMunicipalities returns the authorized municipalities in the order of
// the configured codes. Codes unknown to the reference table are labelled
// with the code itself.
func (p *PropertyService) ListMunicipalities(ctx context.Context) ([]models.ReferenceEntity, error) {
	cfg, err := p.configuration(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrNotConfigured
	}

	known, err := p.store.Municipalities().List(ctx, cfg.MunicipalityCodes)
	if err != nil {
		return nil, err
	}
	labels := lo.SliceToMap(known, func(m models.ReferenceEntity) (string, string) { return m.Value, m.Label })

	return lo.Map(lo.Uniq(cfg.MunicipalityCodes), func(code string, _ int) models.ReferenceEntity {
		label, ok := labels[code]
		if !ok {
			label = code
		}
		return models.ReferenceEntity{Value: code, Label: label}
	}), nil
}

func (p *PropertyService) ListCollections(ctx context.Context) ([]models.ReferenceEntity, error) {
	return p.store.Properties().Collections(ctx)
}

// SearchProperties validates the criteria and runs the search. Municipal
// searches are restricted to the authorized municipalities.
func (p *PropertyService) SearchProperties(ctx context.Context, criteria models.SearchCriteria) ([]models.PropertyRecord, error) {
	if err := validation.ValidateCriteria(criteria); err != nil {
		return nil, err
	}

	if criteria.Scope() == models.ScopeMunicipality {
		cfg, err := p.configuration(ctx)
		if err != nil {
			return nil, err
		}
		if cfg == nil || !cfg.IsActive {
			return nil, ErrNotConfigured
		}
		if !slices.Contains(cfg.MunicipalityCodes, criteria.Municipality) {
			return nil, fmt.Errorf("%w: %s", ErrMunicipalityNotAuthorized, criteria.Municipality)
		}
	}

	records, err := p.store.Properties().Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	zap.S().Debugw("property search", "type", criteria.Type, "scope", criteria.Scope(), "results", len(records))

	return records, nil
}

// SaveConfiguration validates and stores the configuration.
func (p *PropertyService) SaveConfiguration(ctx context.Context, cfg models.AdminConfiguration) error {
	if err := validation.ValidateConfiguration(cfg.Form()); err != nil {
		return err
	}

	if err := p.store.Configuration().Save(ctx, &cfg); err != nil {
		return err
	}

	zap.S().Infow("configuration saved", "municipalities", cfg.MunicipalityCodes, "active", cfg.IsActive)

	return nil
}

// TestConnection checks the API key against the data provider.
func (p *PropertyService) TestConnection(ctx context.Context, apiKey string) (bool, error) {
	if err := validation.ValidateAPIKey(apiKey); err != nil {
		return false, err
	}

	ok, err := p.prober.Probe(ctx, apiKey)
	if err != nil {
		zap.S().Warnw("connection test failed", "error", err)
		return false, err
	}

	zap.S().Infow("connection tested", "connected", ok)

	return ok, nil
}

// ImportProperties stores the records, replacing existing ones with the same ID.
func (p *PropertyService) ImportProperties(ctx context.Context, records []models.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}
	return p.store.Properties().Insert(ctx, records...)
}

// ImportMunicipalities adds or renames municipalities of the reference table.
func (p *PropertyService) ImportMunicipalities(ctx context.Context, municipalities []models.ReferenceEntity) error {
	for _, m := range municipalities {
		if err := p.store.Municipalities().Save(ctx, m); err != nil {
			return fmt.Errorf("saving municipality %s: %w", m.Value, err)
		}
	}
	return nil
}

func (p *PropertyService) configuration(ctx context.Context) (*models.AdminConfiguration, error) {
	cfg, err := p.store.Configuration().Get(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
