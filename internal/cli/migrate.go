package cli

import (
	"context"
	"time"

	mongoMigration "mizdooni/internal/migrations/mongo"
	"mizdooni/pkg/config"

	"github.com/spf13/cobra"
)

const JobName = "mongo-migration"

func NewMigrateCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create MongoDB collections, validators and indexes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			cfg := config.Load(JobName)
			cfg.SetMongo()
			defer cfg.GracefulShutdown()

			cfg.Log.Info("Starting Mongo migration job")
			return mongoMigration.RunMigration(ctx, cfg.Client.Mongo, cfg.MongoDatabaseName, cfg.Log)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 120*time.Second, "overall migration deadline")
	return cmd
}
