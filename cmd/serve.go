package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ecordell/optgen/helpers"
	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	v1 "github.com/tupyy/property-search-agent/api/v1"
	"github.com/tupyy/property-search-agent/internal/config"
	"github.com/tupyy/property-search-agent/internal/handlers"
	"github.com/tupyy/property-search-agent/internal/server"
	"github.com/tupyy/property-search-agent/internal/services"
)

func NewServeCommand(cfg *config.Configuration) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the property backend",
		Example: `  # Run the backend with an in-memory store
  property serve

  # Run the backend with a persistent store and a real data provider
  property serve --data-folder /var/lib/property --provider-url https://provider.example.com/ping --server-mode prod`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateServeConfiguration(cfg); err != nil {
				return err
			}

			zap.S().Infow("using configuration",
				"server", helpers.Flatten(cfg.Server.DebugMap()),
				"data-folder", cfg.DataFolder,
			)

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
			defer cancel()

			s, err := openStore(ctx, cfg.DataFolder)
			if err != nil {
				zap.S().Errorw("failed to initialize database", "error", err)
				return err
			}
			defer func() { _ = s.Close() }()
			zap.S().Info("database initialized successfully")

			propertySrv := services.NewPropertyService(s, newProber(cfg.Server.ProviderURL))
			h := handlers.New(propertySrv)

			srv, err := server.NewServer(cfg.Server, func(router *gin.RouterGroup) {
				v1.RegisterHandlers(router, h)
			})
			if err != nil {
				zap.S().Errorw("failed to create http server", "error", err)
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				zap.S().Infof("Starting HTTP server on port %d", cfg.Server.HTTPPort)
				return srv.Start(gctx)
			})
			g.Go(func() error {
				<-gctx.Done()
				stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer stopCancel()
				return srv.Stop(stopCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}

			zap.S().Info("server shutdown")

			return nil
		},
	}

	registerServeFlags(serveCmd, cfg)

	return serveCmd
}

func registerServeFlags(cmd *cobra.Command, cfg *config.Configuration) {
	nfs := cobrautil.NewNamedFlagSets(cmd)

	serverFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Server"))
	registerServerFlags(serverFlagSet, cfg)

	storeFlagSet := nfs.FlagSet(color.New(color.FgBlue, color.Bold).Sprint("Local store"))
	registerStoreFlags(storeFlagSet, cfg)

	nfs.AddFlagSets(cmd)
}

func validateServeConfiguration(cfg *config.Configuration) error {
	switch config.ServerModeType(cfg.Server.ServerMode) {
	case config.ServerModeProd, config.ServerModeDev:
	default:
		return fmt.Errorf("invalid server mode %q: must be %q or %q", cfg.Server.ServerMode, config.ServerModeProd, config.ServerModeDev)
	}

	if cfg.Server.HTTPPort < 1 || cfg.Server.HTTPPort > 65535 {
		return fmt.Errorf("invalid http-port %d: must be between 1 and 65535", cfg.Server.HTTPPort)
	}

	return nil
}

func registerServerFlags(flagSet *pflag.FlagSet, cfg *config.Configuration) {
	flagSet.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "Port on which the HTTP server is listening")
	flagSet.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode: either prod or dev")
}
