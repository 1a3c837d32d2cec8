package components

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
)

type loadFunc func(ctx context.Context) ([]models.ReferenceEntity, error)

// ReferenceLoader loads the options of a selector. A successful load
// replaces the whole set; a failed one keeps the previous set.
type ReferenceLoader struct {
	name     string
	load     loadFunc
	notifier Notifier

	mu       sync.Mutex
	entities []models.ReferenceEntity
	loading  bool
}

// NewMunicipalityLoader loads the municipalities the service is authorized for.
func NewMunicipalityLoader(remote RemoteDataService, notifier Notifier) *ReferenceLoader {
	return newReferenceLoader("municipalities", remote.ListMunicipalities, notifier)
}

// NewCollectionLoader loads the property collections.
func NewCollectionLoader(remote RemoteDataService, notifier Notifier) *ReferenceLoader {
	return newReferenceLoader("collections", remote.ListCollections, notifier)
}

func newReferenceLoader(name string, load loadFunc, notifier Notifier) *ReferenceLoader {
	return &ReferenceLoader{
		name:     name,
		load:     load,
		notifier: notifier,
		entities: []models.ReferenceEntity{},
	}
}

// Entities returns a copy of the loaded set.
func (l *ReferenceLoader) Entities() []models.ReferenceEntity {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.ReferenceEntity{}, l.entities...)
}

// IsLoading reports whether a load is pending.
func (l *ReferenceLoader) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LoadReferenceData fetches the set from the backend. There is no retry;
// callers may invoke it again.
func (l *ReferenceLoader) LoadReferenceData(ctx context.Context) ([]models.ReferenceEntity, error) {
	l.mu.Lock()
	if l.loading {
		l.mu.Unlock()
		return nil, ErrOperationInProgress
	}
	l.loading = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.loading = false
		l.mu.Unlock()
	}()

	entities, err := l.load(ctx)
	if err != nil {
		zap.S().Named("loader").Errorw("failed to load reference data", "set", l.name, "error", err)
		l.notifier.Notify("Loading error", fmt.Sprintf("Unable to load %s: %s", l.name, models.ErrorMessage(err)), models.SeverityError)
		return nil, fmt.Errorf("load %s: %w", l.name, err)
	}

	loaded := append([]models.ReferenceEntity{}, entities...)

	l.mu.Lock()
	l.entities = loaded
	l.mu.Unlock()

	zap.S().Named("loader").Debugw("reference data loaded", "set", l.name, "count", len(loaded))

	return append([]models.ReferenceEntity{}, loaded...), nil
}
