package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/c360studio/edcclient/transfer"
)

func transferCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Track transfer processes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show a transfer process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			process, err := a.client().Transfers().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(a.out, process)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "state ID",
		Short: "Print the state of a transfer process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := a.client().Transfers().State(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, state)
			return err
		},
	})

	var (
		target            string
		interval, timeout time.Duration
	)
	await := &cobra.Command{
		Use:   "await ID",
		Short: "Wait until a transfer reaches a state or ends",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			state, err := a.client().Transfers().Await(ctx, args[0], transfer.State(target), interval)
			if err != nil {
				return fmt.Errorf("transfer %s stuck in %s: %w", args[0], state, err)
			}
			_, err = fmt.Fprintln(a.out, state)
			return err
		},
	}
	await.Flags().StringVar(&target, "target", string(transfer.StateStarted), "State to wait for")
	await.Flags().DurationVar(&interval, "interval", time.Second, "Polling interval")
	await.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "Give up after this long")
	cmd.AddCommand(await)

	var reason string
	terminate := &cobra.Command{
		Use:   "terminate ID",
		Short: "Terminate a transfer process",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.client().Transfers().Terminate(cmd.Context(), args[0], reason); err != nil {
				return err
			}
			a.logger.Info("Transfer terminated", "id", args[0])
			return nil
		},
	}
	terminate.Flags().StringVar(&reason, "reason", "terminated by operator", "Reason sent to the counter-party")
	cmd.AddCommand(terminate)

	return cmd
}

func dataPlaneCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataplane",
		Short: "Inspect registered data planes",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List data plane instances",
		RunE: func(cmd *cobra.Command, args []string) error {
			planes, err := a.client().DataPlanes().List(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(a.out, planes)
		},
	})
	return cmd
}
