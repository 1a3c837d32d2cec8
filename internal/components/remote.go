package components

import (
	"context"
	"errors"

	"github.com/tupyy/property-search-agent/internal/models"
)

// ErrOperationInProgress is returned when an operation is triggered again
// before its previous invocation completed.
var ErrOperationInProgress = errors.New("operation already in progress")

// RemoteDataService executes the backend queries and commands. Failures may
// carry a backend message as a *models.RemoteError.
type RemoteDataService interface {
	IsConfigured(ctx context.Context) (bool, error)
	ListMunicipalities(ctx context.Context) ([]models.ReferenceEntity, error)
	ListCollections(ctx context.Context) ([]models.ReferenceEntity, error)
	SearchProperties(ctx context.Context, criteria models.SearchCriteria) ([]models.PropertyRecord, error)
	SaveConfiguration(ctx context.Context, cfg models.AdminConfiguration) error
	TestConnection(ctx context.Context, apiKey string) (bool, error)
}

// Notifier surfaces a message to the user. It must not block or fail.
type Notifier interface {
	Notify(title, message string, severity models.Severity)
}

func failedFuture(err error) *models.Future[models.Result[any]] {
	f := models.NewFuture[models.Result[any]](nil)
	f.Resolve(models.Result[any]{Err: err})
	return f
}
