package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dorm-services/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var (
		dir       string
		atlasPath string
		timeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the postgres store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return migrate(ctx, dir, atlasPath)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "file://migrations", "Migration directory URL")
	cmd.Flags().StringVar(&atlasPath, "atlas", "atlas", "Path to the atlas binary")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall migration timeout")

	return cmd
}

func migrate(ctx context.Context, dir, atlasPath string) error {
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return err
	}

	client, err := atlasexec.NewClient(".", atlasPath)
	if err != nil {
		return fmt.Errorf("failed to initialize atlas client: %w", err)
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    dbCfg.BuildDSN(),
		DirURL: dir,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	slog.Info("Migrations applied",
		"applied", len(res.Applied),
		"current", res.Current,
		"target", res.Target,
	)
	return nil
}
