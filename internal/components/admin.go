package components

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/validation"
	"github.com/tupyy/property-search-agent/pkg/scheduler"
)

const timestampLayout = "2006-01-02 15:04:05"

type adminFieldSetter func(form *models.AdminForm, value string) error

var adminFieldSetters = map[models.Field]adminFieldSetter{
	models.FieldAPIKey: func(f *models.AdminForm, v string) error {
		f.APIKey = v
		return nil
	},
	models.FieldMunicipalityCodes: func(f *models.AdminForm, v string) error {
		f.MunicipalityCodes = v
		return nil
	},
	models.FieldIsActive: func(f *models.AdminForm, v string) error {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", models.FieldIsActive, err)
		}
		f.IsActive = active
		return nil
	},
}

// AdminOption configures an Admin component.
type AdminOption func(a *Admin)

// WithClock sets the clock used to timestamp connection tests.
func WithClock(now func() time.Time) AdminOption {
	return func(a *Admin) {
		a.now = now
	}
}

// AdminState is a snapshot of the Admin component.
type AdminState struct {
	Configuration models.ConfigurationStatus
	Form          models.AdminForm
	Tab           models.AdminTab
	Connection    models.ConnectionTestResult
	IsLoading     bool
	IsSaving      bool
	IsTesting     bool
}

// Admin edits the service configuration and tests the API connection.
type Admin struct {
	scheduler *scheduler.Scheduler
	remote    RemoteDataService
	notifier  Notifier
	gate      *ConfigGate
	loader    *ReferenceLoader
	now       func() time.Time

	mu         sync.Mutex
	form       models.AdminForm
	tab        models.AdminTab
	connection models.ConnectionTestResult
	loading    bool
	saving     bool
	testing    bool
}

func NewAdmin(s *scheduler.Scheduler, remote RemoteDataService, notifier Notifier, opts ...AdminOption) *Admin {
	a := &Admin{
		scheduler: s,
		remote:    remote,
		notifier:  notifier,
		gate:      NewConfigGate(remote, notifier),
		loader:    NewMunicipalityLoader(remote, notifier),
		now:       time.Now,
		tab:       models.AdminTabConfiguration,
		connection: models.ConnectionTestResult{
			Status: models.ConnectionStatusUnknown,
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Initialize loads the current configuration in the background. The
// loading flag is raised before the future is returned.
func (a *Admin) Initialize() *models.Future[models.Result[any]] {
	if !a.acquireLoading() {
		return failedFuture(ErrOperationInProgress)
	}

	return a.scheduler.AddWork(func(ctx context.Context) (any, error) {
		defer a.releaseLoading()
		return nil, a.loadCurrentConfiguration(ctx)
	})
}

// LoadCurrentConfiguration checks the backend configuration and, when
// configured, fills the codes field with the authorized municipalities.
func (a *Admin) LoadCurrentConfiguration(ctx context.Context) error {
	if !a.acquireLoading() {
		return ErrOperationInProgress
	}
	defer a.releaseLoading()

	return a.loadCurrentConfiguration(ctx)
}

func (a *Admin) acquireLoading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.loading {
		return false
	}
	a.loading = true
	return true
}

func (a *Admin) releaseLoading() {
	a.mu.Lock()
	a.loading = false
	a.mu.Unlock()
}

func (a *Admin) loadCurrentConfiguration(ctx context.Context) error {
	if a.gate.CheckConfiguration(ctx) != models.ConfigurationStatusConfigured {
		return nil
	}

	municipalities, err := a.loader.LoadReferenceData(ctx)
	if err != nil {
		return err
	}
	if len(municipalities) == 0 {
		return nil
	}

	codes := lo.Map(municipalities, func(m models.ReferenceEntity, _ int) string { return m.Value })

	a.mu.Lock()
	a.form.MunicipalityCodes = strings.Join(codes, ",")
	a.form.IsActive = true
	a.mu.Unlock()

	return nil
}

// SetField sets an input of the configuration form.
func (a *Admin) SetField(field models.Field, value string) error {
	setter, ok := adminFieldSetters[field]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUnknownField, field)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return setter(&a.form, value)
}

// SetTab selects the visible section.
func (a *Admin) SetTab(tab models.AdminTab) error {
	if _, err := models.ParseAdminTab(string(tab)); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.tab = tab

	return nil
}

// Save validates the form and saves the configuration.
func (a *Admin) Save(ctx context.Context) error {
	a.mu.Lock()
	form := a.form

	if err := validation.ValidateConfiguration(form); err != nil {
		a.mu.Unlock()
		a.notifier.Notify("Validation error", err.Error(), models.SeverityError)
		return err
	}

	if a.saving {
		a.mu.Unlock()
		return ErrOperationInProgress
	}
	a.saving = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.saving = false
		a.mu.Unlock()
	}()

	if err := a.remote.SaveConfiguration(ctx, form.ToConfiguration()); err != nil {
		zap.S().Named("admin").Errorw("failed to save configuration", "error", err)
		a.notifier.Notify("Save error", models.ErrorMessage(err), models.SeverityError)
		return fmt.Errorf("save configuration: %w", err)
	}

	zap.S().Named("admin").Infow("configuration saved", "active", form.IsActive)
	a.notifier.Notify("Configuration saved", "The configuration was saved successfully.", models.SeveritySuccess)

	return nil
}

// TestConnection checks the API key against the backend. The result is reset
// to Unknown when the test starts and set once when it completes.
func (a *Admin) TestConnection(ctx context.Context) (models.ConnectionTestResult, error) {
	a.mu.Lock()
	apiKey := a.form.APIKey

	if err := validation.ValidateAPIKey(apiKey); err != nil {
		result := a.connection
		a.mu.Unlock()
		a.notifier.Notify("Validation error", err.Error(), models.SeverityError)
		return result, err
	}

	if a.testing {
		result := a.connection
		a.mu.Unlock()
		return result, ErrOperationInProgress
	}
	a.testing = true
	a.connection = models.ConnectionTestResult{Status: models.ConnectionStatusUnknown}
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.testing = false
		a.mu.Unlock()
	}()

	connected, err := a.remote.TestConnection(ctx, apiKey)
	timestamp := a.now().Format(timestampLayout)

	var result models.ConnectionTestResult
	switch {
	case err != nil:
		result = models.ConnectionTestResult{
			Status:  models.ConnectionStatusError,
			Message: fmt.Sprintf("Error on %s: %s", timestamp, models.ErrorMessage(err)),
		}
		zap.S().Named("admin").Errorw("connection test failed", "error", err)
		a.notifier.Notify("Test error", models.ErrorMessage(err), models.SeverityError)
	case connected:
		result = models.ConnectionTestResult{
			Status:  models.ConnectionStatusSuccess,
			Message: "Connection succeeded on " + timestamp,
		}
		a.notifier.Notify("Test succeeded", "The API connection works.", models.SeveritySuccess)
	default:
		result = models.ConnectionTestResult{
			Status:  models.ConnectionStatusError,
			Message: "Connection failed on " + timestamp,
		}
		a.notifier.Notify("Test failed", "Unable to connect to the API. Check the API key.", models.SeverityError)
	}

	a.mu.Lock()
	a.connection = result
	a.mu.Unlock()

	if err != nil {
		return result, fmt.Errorf("test connection: %w", err)
	}
	return result, nil
}

// State returns a snapshot of the component.
func (a *Admin) State() AdminState {
	status := a.gate.Status()

	a.mu.Lock()
	defer a.mu.Unlock()

	return AdminState{
		Configuration: status,
		Form:          a.form,
		Tab:           a.tab,
		Connection:    a.connection,
		IsLoading:     a.loading,
		IsSaving:      a.saving,
		IsTesting:     a.testing,
	}
}
