package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func negotiationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "negotiation",
		Aliases: []string{"neg"},
		Short:   "Track contract negotiations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show a negotiation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			neg, err := a.client().Negotiations().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, neg)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "state ID",
		Short: "Print the state of a negotiation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.client().Negotiations().State(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, state)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "agreement ID",
		Short: "Show the agreement a finalized negotiation produced",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			agreement, err := a.client().Negotiations().Agreement(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, agreement)
		},
	})

	var interval, timeout time.Duration
	await := &cobra.Command{
		Use:   "await ID",
		Short: "Wait until a negotiation is finalized or terminated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			state, err := a.client().Negotiations().Await(ctx, args[0], interval)
			if err != nil {
				return fmt.Errorf("negotiation %s stuck in %s: %w", args[0], state, err)
			}
			_, err = fmt.Fprintln(a.out, state)
			return err
		},
	}
	await.Flags().DurationVar(&interval, "interval", time.Second, "Polling interval")
	await.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Give up after this long")
	cmd.AddCommand(await)

	var reason string
	terminate := &cobra.Command{
		Use:   "terminate ID",
		Short: "Terminate a negotiation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().Negotiations().Terminate(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			a.logger.Info("Negotiation terminated", "id", args[0])
			return nil
		},
	}
	terminate.Flags().StringVar(&reason, "reason", "terminated by operator", "Reason sent to the counter-party")
	cmd.AddCommand(terminate)

	return cmd
}
