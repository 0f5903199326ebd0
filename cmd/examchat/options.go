package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/toml"
	"github.com/spf13/cobra"
)

// Environment variables read at startup.
const (
	envURL   = "EXAMCHAT_URL"
	envSpeed = "EXAMCHAT_SPEED"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	configPath string
	baseURL    string
	speed      time.Duration
	thinkDelay time.Duration
	mode       string
	formatter  string
	plain      bool
	logFile    string
	verbose    bool
}

func (o *options) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "path to config file (default ~/.examchat/config.toml)")
	f.StringVar(&o.baseURL, "url", "", "backend base URL")
	f.DurationVar(&o.speed, "speed", 0, "delay after each revealed word")
	f.DurationVar(&o.thinkDelay, "think", 0, "pause before a reply is revealed")
	f.StringVar(&o.mode, "mode", "", "reveal granularity: word or grapheme")
	f.StringVar(&o.formatter, "formatter", "", "reply formatter: native or commonmark")
	f.BoolVar(&o.plain, "plain", false, "use plain line-based output instead of the TUI")
	f.StringVar(&o.logFile, "log-file", "", "append diagnostic logs to this file")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log debug output")
}

// config resolves settings: defaults, then the config file, then the
// environment, then flags the user set explicitly.
func (a *app) config(cmd *cobra.Command) (examchat.Config, error) {
	cfg, err := toml.Load(a.opts.configPath, examchat.DefaultConfig())
	if err != nil {
		return examchat.Config{}, err
	}

	if v := a.getenv(envURL); v != "" {
		cfg.BaseURL = v
	}
	if v := a.getenv(envSpeed); v != "" {
		d, err := parseSpeed(v)
		if err != nil {
			return examchat.Config{}, fmt.Errorf("%s: %w", envSpeed, err)
		}
		cfg.Speed = d
	}

	flags := cmd.Flags()
	if flags.Changed("url") {
		cfg.BaseURL = a.opts.baseURL
	}
	if flags.Changed("speed") {
		cfg.Speed = a.opts.speed
	}
	if flags.Changed("think") {
		cfg.ThinkDelay = a.opts.thinkDelay
	}
	if flags.Changed("mode") {
		cfg.Mode = examchat.RevealMode(a.opts.mode)
	}
	if flags.Changed("formatter") {
		cfg.Formatter = a.opts.formatter
	}

	if err := cfg.Validate(); err != nil {
		return examchat.Config{}, err
	}
	return cfg, nil
}

// parseSpeed accepts a Go duration ("40ms") or a bare number of
// milliseconds ("40").
func parseSpeed(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid speed %q: %w", s, examchat.ErrValidation)
	}
	return d, nil
}
