package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/components"
	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/internal/models"
	"github.com/tupyy/property-search-agent/internal/presenter"
	"github.com/tupyy/property-search-agent/pkg/prompt"
	"github.com/tupyy/property-search-agent/pkg/scheduler"
)

type adminSaveOptions struct {
	APIKey            string
	MunicipalityCodes string
	Active            bool
	TestFirst         bool
	Interactive       bool
}

func NewAdminCommand(cfg *config.Configuration) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer the property service configuration",
	}

	adminCmd.AddCommand(
		newAdminShowCommand(cfg),
		newAdminSaveCommand(cfg),
		newAdminTestCommand(cfg),
	)

	return adminCmd
}

// adminRunner builds the Admin component for a command and releases it.
func adminRunner(cmd *cobra.Command, cfg *config.Configuration, run func(ctx context.Context, admin *components.Admin, remote components.RemoteDataService) error) error {
	if err := validateClientConfiguration(cfg); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	remote, closeRemote, err := newRemote(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeRemote()

	sched := scheduler.NewScheduler(cfg.Client.NumWorkers)
	defer sched.Close()

	admin := components.NewAdmin(sched, remote, newNotifier(cmd.ErrOrStderr()))

	return run(ctx, admin, remote)
}

func newAdminShowCommand(cfg *config.Configuration) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return adminRunner(cmd, cfg, func(ctx context.Context, admin *components.Admin, remote components.RemoteDataService) error {
				if err := waitInitialized(ctx, admin.Initialize()); err != nil {
					return notified(err)
				}
				return printAdmin(ctx, cmd.OutOrStdout(), admin.State(), remote)
			})
		},
	}

	registerClientFlagSets(showCmd, cfg, nil)

	return showCmd
}

func newAdminSaveCommand(cfg *config.Configuration) *cobra.Command {
	var opts adminSaveOptions

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "Save the configuration",
		Example: `  # Activate the service for Montréal and Québec
  property admin save --api-key my-test-key --municipality-codes 66023,23027 --active

  # Test the key before saving
  property admin save --api-key my-test-key --municipality-codes 66023 --active --test

  # Fill the configuration interactively
  property admin save -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return adminRunner(cmd, cfg, func(ctx context.Context, admin *components.Admin, _ components.RemoteDataService) error {
				var driver prompt.Driver
				if opts.Interactive {
					driver = prompt.NewSurveyDriver()
				}

				changed := func(name string) bool { return cmd.Flags().Changed(name) }
				return runAdminSave(ctx, admin, opts, changed, driver)
			})
		},
	}

	registerClientFlagSets(saveCmd, cfg, func(nfs *cobrautil.NamedFlagSets) {
		fs := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Configuration"))
		fs.StringVar(&opts.APIKey, "api-key", opts.APIKey, "API key of the data provider")
		fs.StringVar(&opts.MunicipalityCodes, "municipality-codes", opts.MunicipalityCodes, "Comma-separated municipality codes the service is authorized for")
		fs.BoolVar(&opts.Active, "active", opts.Active, "Activate the service")
		fs.BoolVar(&opts.TestFirst, "test", opts.TestFirst, "Test the API key before saving")
		fs.BoolVarP(&opts.Interactive, "interactive", "i", opts.Interactive, "Fill the configuration interactively")
	})

	return saveCmd
}

// runAdminSave loads the current configuration, applies the changed
// options or the prompted values, optionally tests the key, and saves.
func runAdminSave(ctx context.Context, admin *components.Admin, opts adminSaveOptions, changed func(string) bool, driver prompt.Driver) error {
	if err := waitInitialized(ctx, admin.Initialize()); err != nil {
		return notified(err)
	}

	if driver != nil {
		if err := fillAdminInteractive(ctx, admin, driver); err != nil {
			return err
		}
	} else {
		if changed("api-key") {
			if err := admin.SetField(models.FieldAPIKey, opts.APIKey); err != nil {
				return err
			}
		}
		if changed("municipality-codes") {
			if err := admin.SetField(models.FieldMunicipalityCodes, opts.MunicipalityCodes); err != nil {
				return err
			}
		}
		if changed("active") {
			if err := admin.SetField(models.FieldIsActive, strconv.FormatBool(opts.Active)); err != nil {
				return err
			}
		}
	}

	if opts.TestFirst {
		result, err := admin.TestConnection(ctx)
		if err != nil {
			return notified(err)
		}
		if result.Status != models.ConnectionStatusSuccess {
			return notified(fmt.Errorf("connection test failed: %s", result.Message))
		}
	}

	return notified(admin.Save(ctx))
}

func fillAdminInteractive(ctx context.Context, admin *components.Admin, driver prompt.Driver) error {
	form := admin.State().Form

	apiKey, err := driver.Password(ctx, "API key")
	if err != nil {
		return err
	}
	if err := admin.SetField(models.FieldAPIKey, apiKey); err != nil {
		return err
	}

	codes, err := driver.Input(ctx, "Municipality codes (comma-separated)", form.MunicipalityCodes)
	if err != nil {
		return err
	}
	if err := admin.SetField(models.FieldMunicipalityCodes, codes); err != nil {
		return err
	}

	active, err := driver.Confirm(ctx, "Activate the service?", form.IsActive)
	if err != nil {
		return err
	}
	return admin.SetField(models.FieldIsActive, strconv.FormatBool(active))
}

func newAdminTestCommand(cfg *config.Configuration) *cobra.Command {
	var (
		apiKey      string
		interactive bool
	)

	testCmd := &cobra.Command{
		Use:     "test",
		Short:   "Test an API key against the data provider",
		Example: `  property admin test --api-key my-test-key`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return adminRunner(cmd, cfg, func(ctx context.Context, admin *components.Admin, _ components.RemoteDataService) error {
				var driver prompt.Driver
				if interactive {
					driver = prompt.NewSurveyDriver()
				}

				result, err := runAdminTest(ctx, admin, apiKey, driver)
				if err != nil {
					return err
				}

				view := presenter.NewConnectionView(result.Status)
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", connectionColor(view.Variant).Sprint(view.Text), result.Message)
				return err
			})
		},
	}

	registerClientFlagSets(testCmd, cfg, func(nfs *cobrautil.NamedFlagSets) {
		fs := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Configuration"))
		fs.StringVar(&apiKey, "api-key", apiKey, "API key to test")
		fs.BoolVarP(&interactive, "interactive", "i", interactive, "Ask the API key interactively")
	})

	return testCmd
}

func runAdminTest(ctx context.Context, admin *components.Admin, apiKey string, driver prompt.Driver) (models.ConnectionTestResult, error) {
	if driver != nil {
		var err error
		if apiKey, err = driver.Password(ctx, "API key"); err != nil {
			return models.ConnectionTestResult{}, err
		}
	}

	if err := admin.SetField(models.FieldAPIKey, apiKey); err != nil {
		return models.ConnectionTestResult{}, err
	}

	result, err := admin.TestConnection(ctx)
	if err != nil {
		return result, notified(err)
	}
	return result, nil
}

func printAdmin(ctx context.Context, out io.Writer, state components.AdminState, remote components.RemoteDataService) error {
	view := presenter.NewAdminView(state)

	status := color.New(color.FgYellow).Sprint("checking")
	switch {
	case view.Gate.Configured:
		status = color.New(color.FgGreen).Sprint("configured")
	case view.Gate.NotConfigured:
		status = color.New(color.FgRed).Sprint("not configured")
	}

	_, _ = fmt.Fprintf(out, "Status:             %s\n", status)

	if reader, ok := remote.(configurationReader); ok {
		if cfg, err := reader.Configuration(ctx); err == nil && cfg != nil {
			_, _ = fmt.Fprintf(out, "API key:            %s\n", v1.MaskAPIKey(cfg.APIKey))
			if !cfg.UpdatedAt.IsZero() {
				_, _ = fmt.Fprintf(out, "Last updated:       %s\n", cfg.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
		}
	}

	_, _ = fmt.Fprintf(out, "Municipality codes: %s\n", state.Form.MunicipalityCodes)
	_, err := fmt.Fprintf(out, "Active:             %t\n", state.Form.IsActive)
	return err
}

func connectionColor(variant string) *color.Color {
	switch variant {
	case "success":
		return color.New(color.FgGreen, color.Bold)
	case "error":
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgYellow, color.Bold)
	}
}
