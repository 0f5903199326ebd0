package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/backend"
	bt "github.com/fwojciec/examchat/bubbletea"
	"github.com/fwojciec/examchat/goldmark"
	"github.com/fwojciec/examchat/markdown"
	"github.com/fwojciec/examchat/reveal"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"
	"pkt.systems/pslog"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

func (a *app) newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd)
		},
	}
}

func (a *app) runChat(cmd *cobra.Command) error {
	cfg, err := a.config(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := pslog.Ctx(ctx)
	client := newClient(cfg, logger)
	userID := backend.NewUserID()
	logger.Info("chat.start", "user_id", userID, "base_url", cfg.BaseURL)

	out := cmd.OutOrStdout()
	if a.opts.plain || !isTerminal(out) {
		return runPlain(ctx, cmd.InOrStdin(), out, client, cfg, userID)
	}

	m := bt.New(client, cfg, bt.WithUserID(userID), bt.WithLogger(logger))
	if err := bt.Run(ctx, m); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

// runPlain reads one message per line from in and reveals each reply on
// out. A failed exchange prints examchat.FailureMessage and the session
// continues.
func runPlain(ctx context.Context, in io.Reader, out io.Writer, client examchat.Backend, cfg examchat.Config, userID string) error {
	logger := pslog.Ctx(ctx)
	writer := reveal.NewWriter(out, outputWidth(out))
	seq := reveal.NewSequencer(writer, reveal.WithMode(cfg.Mode))
	format := formatter(cfg)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		req := examchat.ChatRequest{Message: text, UserID: userID}
		if err := req.Validate(); err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		if err := exchange(ctx, client, seq, format, cfg, req); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Warn("chat.exchange_failed", "err", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// exchange sends one request and reveals its reply. On failure the
// generic failure message is written in place of the reply and the error
// is returned for logging.
func exchange(ctx context.Context, client examchat.Backend, seq *reveal.Sequencer, format func(string) examchat.Document, cfg examchat.Config, req examchat.ChatRequest) error {
	resp, err := client.Chat(ctx, req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			seq.Reveal(ctx, markdown.Format(examchat.FailureMessage), 0).Wait()
		}
		return err
	}
	if err := sleep(ctx, cfg.ThinkDelay); err != nil {
		return err
	}
	seq.Reveal(ctx, format(resp.Response), cfg.Speed).Wait()
	return nil
}

func newClient(cfg examchat.Config, logger pslog.Logger) *backend.Client {
	return backend.New(cfg.BaseURL,
		backend.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		backend.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst)),
		backend.WithLogger(logger),
	)
}

func formatter(cfg examchat.Config) func(string) examchat.Document {
	if cfg.Formatter == examchat.FormatterCommonMark {
		return goldmark.Format
	}
	return markdown.Format
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// outputWidth returns the terminal width of w, or defaultWidth.
func outputWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
