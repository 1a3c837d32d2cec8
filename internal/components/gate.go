package components

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
)

// ConfigGate decides once whether the backend is configured.
// The status starts Unknown and moves to Configured or NotConfigured exactly once.
type ConfigGate struct {
	remote   RemoteDataService
	notifier Notifier

	mu      sync.Mutex
	status  models.ConfigurationStatus
	loading bool
}

func NewConfigGate(remote RemoteDataService, notifier Notifier) *ConfigGate {
	return &ConfigGate{
		remote:   remote,
		notifier: notifier,
		status:   models.ConfigurationStatusUnknown,
	}
}

// Status returns the current configuration status.
func (g *ConfigGate) Status() models.ConfigurationStatus {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// IsLoading reports whether the check is pending.
func (g *ConfigGate) IsLoading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

// CheckConfiguration asks the backend whether it is configured. Once resolved
// the status is returned without calling the backend again. A call made while
// another check is pending returns Unknown.
func (g *ConfigGate) CheckConfiguration(ctx context.Context) models.ConfigurationStatus {
	g.mu.Lock()
	if g.status != models.ConfigurationStatusUnknown || g.loading {
		status := g.status
		g.mu.Unlock()
		return status
	}
	g.loading = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		g.loading = false
		g.mu.Unlock()
	}()

	status := models.ConfigurationStatusNotConfigured
	configured, err := g.remote.IsConfigured(ctx)
	switch {
	case err != nil:
		zap.S().Named("gate").Errorw("failed to check configuration", "error", err)
		g.notifier.Notify("Configuration error", models.ErrorMessage(err), models.SeverityError)
	case configured:
		status = models.ConfigurationStatusConfigured
	}

	g.mu.Lock()
	g.status = status
	g.mu.Unlock()

	zap.S().Named("gate").Debugw("configuration status resolved", "status", status)

	return status
}
