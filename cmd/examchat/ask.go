package main

import (
	"errors"
	"strings"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/backend"
	"github.com/fwojciec/examchat/reveal"
	"github.com/spf13/cobra"
	"pkt.systems/pslog"
)

// errExchangeFailed reports a failed ask without the backend's detail,
// which goes to the log instead.
var errExchangeFailed = errors.New("exchange failed")

func (a *app) newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Ask one question and reveal the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			req := examchat.ChatRequest{
				Message: strings.Join(args, " "),
				UserID:  backend.NewUserID(),
			}
			if err := req.Validate(); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			writer := reveal.NewWriter(out, outputWidth(out))
			seq := reveal.NewSequencer(writer, reveal.WithMode(cfg.Mode))
			client := newClient(cfg, pslog.Ctx(ctx))
			if err := exchange(ctx, client, seq, formatter(cfg), cfg, req); err != nil {
				pslog.Ctx(ctx).Warn("chat.exchange_failed", "err", err)
				return errExchangeFailed
			}
			return nil
		},
	}
}
