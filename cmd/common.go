package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/components"
	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/services"
	"github.com/tupyy/property-search-agent/internal/store"
	"github.com/tupyy/property-search-agent/internal/store/migrations"
	"github.com/tupyy/property-search-agent/pkg/backend"
	"github.com/tupyy/property-search-agent/pkg/notify"
)

const dbFile = "property.duckdb"

// ErrNotConfigured is returned when the backend reports no usable configuration.
var ErrNotConfigured = errors.New("the service is not configured: run 'property admin save' first")

// NotifiedError marks an error the user was already notified about.
type NotifiedError struct {
	Err error
}

func (e *NotifiedError) Error() string {
	return e.Err.Error()
}

func (e *NotifiedError) Unwrap() error {
	return e.Err
}

func notified(err error) error {
	if err == nil {
		return nil
	}
	return &NotifiedError{Err: err}
}

// IsNotified tells whether err was already shown to the user.
func IsNotified(err error) bool {
	var n *NotifiedError
	return errors.As(err, &n)
}

// configurationReader is implemented by the remotes able to return the stored configuration.
type configurationReader interface {
	Configuration(ctx context.Context) (*models.AdminConfiguration, error)
}

// openStore opens the DuckDB store in dataFolder and migrates it. An empty
// folder gives an in-memory database.
func openStore(ctx context.Context, dataFolder string) (*store.Store, error) {
	dbPath := filepath.Join(dataFolder, dbFile)
	if dataFolder == "" {
		dbPath = ":memory:"
		zap.S().Warn("data-folder not set, using in-memory database (data will not persist)")
	}

	db, err := store.NewDB(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store.NewStore(db), nil
}

func newProber(providerURL string) services.ConnectionProber {
	if providerURL == "" {
		zap.S().Info("provider-url not set, connection tests use the sandbox prober")
		return services.SandboxProber{}
	}
	return services.NewHTTPProber(providerURL)
}

// newRemote returns the HTTP client when a backend URL is configured, the
// local store service otherwise. The returned func releases the resources.
func newRemote(ctx context.Context, cfg *config.Configuration) (components.RemoteDataService, func(), error) {
	if cfg.Client.BackendURL != "" {
		client, err := backend.NewClient(cfg.Client.BackendURL, cfg.Client.Timeout)
		if err != nil {
			return nil, nil, err
		}
		zap.S().Debugw("using remote backend", "url", cfg.Client.BackendURL)
		return client, func() {}, nil
	}

	s, err := openStore(ctx, cfg.DataFolder)
	if err != nil {
		return nil, nil, err
	}
	zap.S().Debugw("using local store", "data-folder", cfg.DataFolder)

	return services.NewPropertyService(s, newProber(cfg.Server.ProviderURL)), func() { _ = s.Close() }, nil
}

func newNotifier(out io.Writer) components.Notifier {
	return notify.Multi{notify.NewConsole(out), notify.Log{}}
}

// waitInitialized waits for a component startup and returns its error.
func waitInitialized(ctx context.Context, fut *models.Future[models.Result[any]]) error {
	res, err := fut.Wait(ctx)
	if err != nil {
		return err
	}
	return res.Err
}

func validateClientConfiguration(cfg *config.Configuration) error {
	if cfg.Client.BackendURL != "" {
		if _, err := url.ParseRequestURI(cfg.Client.BackendURL); err != nil {
			return fmt.Errorf("invalid backend-url %q: %w", cfg.Client.BackendURL, err)
		}
	}
	if cfg.Client.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", cfg.Client.Timeout)
	}
	if cfg.Client.NumWorkers < 1 {
		return fmt.Errorf("invalid num-workers %d: must be at least 1", cfg.Client.NumWorkers)
	}
	return nil
}

func registerClientFlagSets(cmd *cobra.Command, cfg *config.Configuration, extra func(nfs *cobrautil.NamedFlagSets)) {
	nfs := cobrautil.NewNamedFlagSets(cmd)

	clientFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Client"))
	registerClientFlags(clientFlagSet, cfg)

	storeFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Local store"))
	registerStoreFlags(storeFlagSet, cfg)

	if extra != nil {
		extra(nfs)
	}

	nfs.AddFlagSets(cmd)
}

func registerClientFlags(flagSet *pflag.FlagSet, cfg *config.Configuration) {
	flagSet.StringVar(&cfg.Client.BackendURL, "backend-url", cfg.Client.BackendURL, "URL of the property backend. When empty the local store is used")
	flagSet.DurationVar(&cfg.Client.Timeout, "timeout", cfg.Client.Timeout, "Timeout of the backend requests")
	flagSet.IntVar(&cfg.Client.NumWorkers, "num-workers", cfg.Client.NumWorkers, "Number of scheduler workers")
}

func registerStoreFlags(flagSet *pflag.FlagSet, cfg *config.Configuration) {
	flagSet.StringVar(&cfg.DataFolder, "data-folder", cfg.DataFolder, "Path to the persistent data folder")
	flagSet.StringVar(&cfg.Server.ProviderURL, "provider-url", cfg.Server.ProviderURL, "URL of the data provider used to test API keys. When empty keys containing 'test' are accepted")
}
