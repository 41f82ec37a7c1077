// Package cli holds the mizdooni command tree.
package cli

import (
	"github.com/spf13/cobra"
)

const ServiceName = "mizdooni"

func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mizdooni",
		Short:         "Restaurant table reservations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewSlotsCmd())
	cmd.AddCommand(NewAvailableCmd())
	cmd.AddCommand(NewReserveCmd())
	cmd.AddCommand(NewCancelCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}
