package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dorm-services/cmd/bootstrap"
	"dorm-services/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func init() {
	// Never expose debug output because of a misconfigured environment
	gin.SetMode(gin.ReleaseMode)

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dorm-services",
		Short: "Dormitory space reservations and maintenance complaints",
		Long: `dorm-services serves the dormitory API: shared-space reservations with a
per-slot waitlist, maintenance complaints and the administrator console.

Running without a subcommand is the same as "serve".`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve()
		},
	})
	cmd.AddCommand(migrateCmd())
	cmd.AddCommand(hashPasswordCmd())

	return cmd
}

// @title           dorm-services
// @version         1.0
// @description     Dormitory space reservations and maintenance complaints.

// @BasePath  /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func startServer(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, logger *slog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			gin.EnableJsonDecoderDisallowUnknownFields()
			listenAddr := ":" + cfg.Server.Port
			logger.Info("🚀 Starting server", "address", listenAddr, "mode", gin.Mode(), "storage", cfg.Storage.Driver)
			go func() {
				if err := engine.Run(listenAddr); err != nil {
					logger.Error("Server failed to start", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			logger.Info("🛑 Stopping server")
			return nil
		},
	})
}

func serve() error {
	app := fx.New(
		bootstrap.Module,
		fx.Provide(
			func() *gin.Engine {
				return gin.New()
			},
		),
		fx.Invoke(
			startServer,
		),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("Application failed to start", "error", err)
		return err
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		// Shutdown errors are logged only; the process is exiting anyway
		slog.Error("Application failed to stop cleanly", "error", err)
	}

	slog.Info("Application stopped")
	return nil
}
