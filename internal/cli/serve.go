package cli

import (
	"context"

	"mizdooni/pkg/config"

	"github.com/spf13/cobra"
)

func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the reservation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(ServiceName)

			ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout+cfg.RequestTimeout)
			defer cancel()

			services, err := Build(ctx, cfg)
			if err != nil {
				cfg.GracefulShutdown()
				return err
			}

			services.App.Run()
			return nil
		},
	}
}
