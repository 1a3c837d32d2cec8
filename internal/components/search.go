package components

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/validation"
	"github.com/tupyy/property-search-agent/pkg/scheduler"
)

type searchFieldSetter func(form *models.SearchForm, value string)

var searchFieldSetters = map[models.Field]searchFieldSetter{
	models.FieldCollection:     func(f *models.SearchForm, v string) { f.Selection = v },
	models.FieldMunicipality:   func(f *models.SearchForm, v string) { f.Selection = v },
	models.FieldStreetName:     func(f *models.SearchForm, v string) { f.StreetName = v },
	models.FieldCivicNumber:    func(f *models.SearchForm, v string) { f.CivicNumber = v },
	models.FieldOwnerFirstName: func(f *models.SearchForm, v string) { f.OwnerFirstName = v },
	models.FieldOwnerLastName:  func(f *models.SearchForm, v string) { f.OwnerLastName = v },
	models.FieldLotNumber:      func(f *models.SearchForm, v string) { f.LotNumber = v },
	models.FieldMatricule:      func(f *models.SearchForm, v string) { f.Matricule = v },
}

type searchProfile struct {
	scope  models.Scope
	gated  bool
	modes  []models.SearchType
	fields []models.Field
}

var (
	collectionProfile = searchProfile{
		scope:  models.ScopeCollection,
		modes:  []models.SearchType{models.SearchTypeAddress},
		fields: []models.Field{models.FieldCollection, models.FieldStreetName, models.FieldCivicNumber},
	}
	municipalProfile = searchProfile{
		scope: models.ScopeMunicipality,
		gated: true,
		modes: models.SearchTypes,
		fields: []models.Field{
			models.FieldMunicipality,
			models.FieldStreetName,
			models.FieldCivicNumber,
			models.FieldOwnerFirstName,
			models.FieldOwnerLastName,
			models.FieldLotNumber,
			models.FieldMatricule,
		},
	}
)

// SearchState is a snapshot of a PropertySearch.
type SearchState struct {
	Scope         models.Scope
	Modes         []models.SearchType
	Configuration models.ConfigurationStatus
	SearchType    models.SearchType
	Form          models.SearchForm
	References    []models.ReferenceEntity
	Results       []models.PropertyRecord
	ShowResults   bool
	IsLoading     bool
	IsSearching   bool
}

// PropertySearch is a property search form narrowed by a collection or a municipality.
type PropertySearch struct {
	profile   searchProfile
	scheduler *scheduler.Scheduler
	remote    RemoteDataService
	notifier  Notifier
	gate      *ConfigGate
	loader    *ReferenceLoader

	mu          sync.Mutex
	searchType  models.SearchType
	form        models.SearchForm
	results     []models.PropertyRecord
	showResults bool
	loading     bool
	searching   bool
}

// NewCollectionSearch returns an address search over a property collection.
// It does not check the backend configuration.
func NewCollectionSearch(s *scheduler.Scheduler, remote RemoteDataService, notifier Notifier) *PropertySearch {
	return newPropertySearch(collectionProfile, s, remote, notifier, NewCollectionLoader(remote, notifier))
}

// NewMunicipalSearch returns a search over the authorized municipalities,
// available once the backend reports it is configured.
func NewMunicipalSearch(s *scheduler.Scheduler, remote RemoteDataService, notifier Notifier) *PropertySearch {
	return newPropertySearch(municipalProfile, s, remote, notifier, NewMunicipalityLoader(remote, notifier))
}

func newPropertySearch(profile searchProfile, s *scheduler.Scheduler, remote RemoteDataService, notifier Notifier, loader *ReferenceLoader) *PropertySearch {
	p := &PropertySearch{
		profile:    profile,
		scheduler:  s,
		remote:     remote,
		notifier:   notifier,
		loader:     loader,
		searchType: profile.modes[0],
		results:    []models.PropertyRecord{},
	}
	if profile.gated {
		p.gate = NewConfigGate(remote, notifier)
	}
	return p
}

// Initialize runs the startup lifecycle: configuration check, then reference
// data loading when the backend is configured. The returned future resolves
// with the configuration status.
func (p *PropertySearch) Initialize() *models.Future[models.Result[any]] {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return failedFuture(ErrOperationInProgress)
	}
	p.loading = true
	p.mu.Unlock()

	return p.scheduler.AddWork(func(ctx context.Context) (any, error) {
		defer func() {
			p.mu.Lock()
			p.loading = false
			p.mu.Unlock()
		}()
		return p.initialize(ctx)
	})
}

func (p *PropertySearch) initialize(ctx context.Context) (models.ConfigurationStatus, error) {
	status := models.ConfigurationStatusConfigured
	if p.gate != nil {
		status = p.gate.CheckConfiguration(ctx)
	}

	if status != models.ConfigurationStatusConfigured {
		zap.S().Named("search").Infow("backend not configured, skipping reference data", "scope", p.profile.scope)
		return status, nil
	}

	if _, err := p.loader.LoadReferenceData(ctx); err != nil {
		return status, err
	}

	return status, nil
}

// ConfigurationStatus returns Configured for components without a gate.
func (p *PropertySearch) ConfigurationStatus() models.ConfigurationStatus {
	if p.gate == nil {
		return models.ConfigurationStatusConfigured
	}
	return p.gate.Status()
}

// SetField sets a form input. Only the inputs of this component are accepted.
func (p *PropertySearch) SetField(field models.Field, value string) error {
	setter, ok := searchFieldSetters[field]
	if !ok || !slices.Contains(p.profile.fields, field) {
		return fmt.Errorf("%w: %s", models.ErrUnknownField, field)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	setter(&p.form, value)

	return nil
}

// SetSearchType switches the search mode and clears the results.
func (p *PropertySearch) SetSearchType(searchType models.SearchType) error {
	if !slices.Contains(p.profile.modes, searchType) {
		return fmt.Errorf("search type %q is not available for %s searches", searchType, p.profile.scope)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchType = searchType
	p.clearResults()

	return nil
}

// ClearResults hides and drops the current results.
func (p *PropertySearch) ClearResults() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearResults()
}

func (p *PropertySearch) clearResults() {
	p.results = []models.PropertyRecord{}
	p.showResults = false
}

// Search validates the form and runs the search. Validation errors are
// notified and returned without calling the backend. An empty result is not
// an error; it is notified as information.
func (p *PropertySearch) Search(ctx context.Context) ([]models.PropertyRecord, error) {
	p.mu.Lock()
	searchType, form := p.searchType, p.form

	if err := validation.ValidateSearch(p.profile.scope, searchType, form); err != nil {
		p.mu.Unlock()
		p.notifier.Notify("Validation error", err.Error(), models.SeverityError)
		return nil, err
	}

	if p.searching {
		p.mu.Unlock()
		return nil, ErrOperationInProgress
	}
	p.searching = true
	p.clearResults()
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.searching = false
		p.mu.Unlock()
	}()

	criteria := models.NewSearchCriteria(p.profile.scope, searchType, form)

	records, err := p.remote.SearchProperties(ctx, criteria)
	if err != nil {
		zap.S().Named("search").Errorw("property search failed", "scope", p.profile.scope, "type", searchType, "error", err)
		p.notifier.Notify("Search error", models.ErrorMessage(err), models.SeverityError)
		return nil, fmt.Errorf("search properties: %w", err)
	}

	results := append([]models.PropertyRecord{}, records...)

	p.mu.Lock()
	p.results = results
	p.showResults = true
	p.mu.Unlock()

	zap.S().Named("search").Debugw("property search completed", "scope", p.profile.scope, "type", searchType, "count", len(results))

	if len(results) == 0 {
		p.notifier.Notify("No results", "No property found for these criteria", models.SeverityInfo)
	}

	return append([]models.PropertyRecord{}, results...), nil
}

// State returns a snapshot of the component.
func (p *PropertySearch) State() SearchState {
	status := p.ConfigurationStatus()
	references := p.loader.Entities()

	p.mu.Lock()
	defer p.mu.Unlock()

	return SearchState{
		Scope:         p.profile.scope,
		Modes:         append([]models.SearchType{}, p.profile.modes...),
		Configuration: status,
		SearchType:    p.searchType,
		Form:          p.form,
		References:    references,
		Results:       append([]models.PropertyRecord{}, p.results...),
		ShowResults:   p.showResults,
		IsLoading:     p.loading,
		IsSearching:   p.searching,
	}
}
