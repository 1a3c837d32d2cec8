package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/internal/services"
	"github.com/tupyy/property-search-agent/pkg/roll"
)

func NewImportCommand(cfg *config.Configuration) *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a property roll into the local store",
		Example: `  # Import a roll
  property import --data-folder /var/lib/property montreal.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DataFolder == "" {
				return errors.New("data-folder must be set to import a roll")
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			r, err := roll.Parse(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			ctx := context.Background()
			s, err := openStore(ctx, cfg.DataFolder)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			n, err := importRoll(ctx, services.NewPropertyService(s, services.SandboxProber{}), r)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %d properties imported from %s\n", color.New(color.FgGreen, color.Bold).Sprint("Done:"), n, args[0])
			return err
		},
	}

	nfs := cobrautil.NewNamedFlagSets(importCmd)
	registerStoreFlags(nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Local store")), cfg)
	nfs.AddFlagSets(importCmd)

	return importCmd
}

func importRoll(ctx context.Context, srv *services.PropertyService, r *roll.Roll) (int, error) {
	if err := srv.ImportMunicipalities(ctx, r.MunicipalityModels()); err != nil {
		return 0, err
	}

	records := r.PropertyModels()
	if err := srv.ImportProperties(ctx, records); err != nil {
		return 0, err
	}

	zap.S().Infow("roll imported", "municipalities", len(r.Municipalities), "properties", len(records))

	return len(records), nil
}
