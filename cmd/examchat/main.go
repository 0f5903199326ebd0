// Command examchat is a terminal client for the GATE/NET exam assistant.
//
// Usage:
//
//	examchat [flags]              interactive chat (TUI on a terminal)
//	examchat ask <message>        one-shot question
//	examchat format [file]        print the formatted document as JSON
//	examchat render [file]        reveal a local markdown or JSON document
//	examchat health               check the backend
//
// Settings come from ~/.examchat/config.toml, then EXAMCHAT_URL and
// EXAMCHAT_SPEED, then flags.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/psi"
	"pkt.systems/pslog"
)

func main() {
	psi.Run(submain)
}

func submain(ctx context.Context) int {
	root := newRootCmd(os.Getenv)
	root.SetArgs(os.Args[1:])

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "examchat: %v\n", err)
		return 1
	}
	return 0
}

// app holds the state shared by all subcommands. It is populated by the
// root command's pre-run hook.
type app struct {
	getenv func(string) string
	opts   options
	logs   io.Closer
}

func newRootCmd(getenv func(string) string) *cobra.Command {
	a := &app{getenv: getenv}

	root := &cobra.Command{
		Use:           "examchat",
		Short:         "Chat with the GATE/NET exam assistant",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}
	a.opts.register(root)

	root.AddCommand(a.newChatCmd())
	root.AddCommand(a.newAskCmd())
	root.AddCommand(a.newFormatCmd())
	root.AddCommand(a.newRenderCmd())
	root.AddCommand(a.newHealthCmd())

	return root
}

// setup resolves configuration and attaches the logger to the command
// context.
func (a *app) setup(cmd *cobra.Command) error {
	logger, closer, err := newLogger(a.opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logs = closer
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(pslog.ContextWithLogger(ctx, logger))
	return nil
}

func (a *app) teardown() error {
	if a.logs == nil {
		return nil
	}
	err := a.logs.Close()
	a.logs = nil
	return err
}
