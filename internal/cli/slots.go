package cli

import (
	"fmt"
	"strings"
	"time"

	"mizdooni/internal/availability"
	"mizdooni/pkg/config"
	"mizdooni/pkg/model"

	"github.com/spf13/cobra"
)

// NewSlotsCmd prints the candidate start times for a pair of operating hours without a server.
func NewSlotsCmd() *cobra.Command {
	var (
		opening  string
		closing  string
		duration time.Duration
		step     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List candidate start times for the given operating hours",
		RunE: func(cmd *cobra.Command, args []string) error {
			openAt, err := model.ParseTimeOfDay(opening)
			if err != nil {
				return fmt.Errorf("--opening: %w", err)
			}
			closeAt, err := model.ParseTimeOfDay(closing)
			if err != nil {
				return fmt.Errorf("--closing: %w", err)
			}
			if duration <= 0 || step <= 0 {
				return fmt.Errorf("--duration and --step must be positive")
			}

			slots := availability.StartTimes(openAt, closeAt, availability.Policy{ServiceDuration: duration, SlotStep: step})
			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no bookable start times")
				return nil
			}

			out := make([]string, len(slots))
			for i, s := range slots {
				out[i] = s.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return nil
		},
	}
	cmd.Flags().StringVar(&opening, "opening", "09:00", "opening time (HH:MM)")
	cmd.Flags().StringVar(&closing, "closing", "22:00", "closing time (HH:MM)")
	cmd.Flags().DurationVar(&duration, "duration", config.DefaultServiceDuration, "service duration")
	cmd.Flags().DurationVar(&step, "step", config.DefaultSlotStep, "spacing between start times")
	return cmd
}
