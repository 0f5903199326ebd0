package main

import (
	"fmt"

	"github.com/fwojciec/examchat"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

func (a *app) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is up",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			status, err := newClient(cfg, pslog.Ctx(ctx)).Health(ctx)
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", status.Status, status.Message); err != nil {
				return err
			}
			if !status.Healthy() {
				return fmt.Errorf("backend reports %q: %w", status.Status, examchat.ErrBackend)
			}
			return nil
		},
	}
}
