package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"mizdooni/pkg/client"
	httputil "mizdooni/pkg/http"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:8080"

func serverFlag(cmd *cobra.Command, server *string) {
	def := os.Getenv("MIZDOONI_SERVER")
	if def == "" {
		def = defaultServer
	}
	cmd.Flags().StringVar(server, "server", def, "API base URL")
}

func NewAvailableCmd() *cobra.Command {
	var (
		server       string
		restaurantID int64
		people       int
		date         string
	)

	cmd := &cobra.Command{
		Use:   "available",
		Short: "Show the free start times of a restaurant on a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := time.Parse(httputil.DateLayout, date)
			if err != nil {
				return fmt.Errorf("--date must use %s", httputil.DateLayout)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			got, err := client.NewReservationsClient(server).AvailableTimes(ctx, restaurantID, people, day)
			if err != nil {
				return err
			}
			if len(got.AvailableTimes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: fully booked for %d\n", got.Date, got.People)
				return nil
			}

			times := make([]string, len(got.AvailableTimes))
			for i, t := range got.AvailableTimes {
				times[i] = t.String()
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", got.Date, strings.Join(times, " "))
			return nil
		},
	}
	serverFlag(cmd, &server)
	cmd.Flags().Int64Var(&restaurantID, "restaurant", 0, "restaurant id")
	cmd.Flags().IntVar(&people, "people", 2, "party size")
	cmd.Flags().StringVar(&date, "date", time.Now().Format(httputil.DateLayout), "date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("restaurant")
	return cmd
}

func NewReserveCmd() *cobra.Command {
	var (
		server       string
		user         string
		restaurantID int64
		people       int
		at           string
	)

	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Reserve a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(httputil.DateTimeLayout, at)
			if err != nil {
				return fmt.Errorf("--at must use %s", httputil.DateTimeLayout)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			r, err := client.NewReservationsClient(server).WithUser(user).Reserve(ctx, restaurantID, people, start)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reservation %d: table %d, %s to %s\n",
				r.Number, r.TableNumber, r.Start.Format(httputil.DateTimeLayout), r.End.Format("15:04"))
			return nil
		},
	}
	serverFlag(cmd, &server)
	cmd.Flags().StringVar(&user, "user", "", "customer id")
	cmd.Flags().Int64Var(&restaurantID, "restaurant", 0, "restaurant id")
	cmd.Flags().IntVar(&people, "people", 2, "party size")
	cmd.Flags().StringVar(&at, "at", "", "start (YYYY-MM-DD HH:MM)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("restaurant")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func NewCancelCmd() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "cancel <reservation-number>",
		Short: "Cancel a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var number int64
			if _, err := fmt.Sscan(args[0], &number); err != nil {
				return fmt.Errorf("invalid reservation number %q", args[0])
			}

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			r, err := client.NewReservationsClient(server).Cancel(ctx, number)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "reservation %d cancelled\n", r.Number)
			return nil
		},
	}
	serverFlag(cmd, &server)
	return cmd
}
