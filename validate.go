package examchat

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MaxMessageLength is the longest message, in runes, the client sends.
	MaxMessageLength = 500
	// WarnMessageLength is the length past which the input is highlighted.
	WarnMessageLength = 450
)

// Validate checks a request before it is sent.
func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message must not be empty: %w", ErrValidation)
	}
	if n := utf8.RuneCountInString(r.Message); n > MaxMessageLength {
		return fmt.Errorf("message is %d characters, limit is %d: %w", n, MaxMessageLength, ErrValidation)
	}
	if r.UserID == "" {
		return fmt.Errorf("user id must not be empty: %w", ErrValidation)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("base url %q must be an absolute http(s) URL: %w", c.BaseURL, ErrValidation)
	}
	if c.Speed < 0 || c.Speed > 5*time.Second {
		return fmt.Errorf("speed must be in [0, 5s], got %s: %w", c.Speed, ErrValidation)
	}
	if c.ThinkDelay < 0 {
		return fmt.Errorf("think delay must be non-negative, got %s: %w", c.ThinkDelay, ErrValidation)
	}
	switch c.Mode {
	case RevealWord, RevealGrapheme:
	default:
		return fmt.Errorf("unknown reveal mode %q: %w", c.Mode, ErrValidation)
	}
	switch c.Formatter {
	case FormatterNative, FormatterCommonMark:
	default:
		return fmt.Errorf("unknown formatter %q: %w", c.Formatter, ErrValidation)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests per second must be positive, got %g: %w", c.RequestsPerSecond, ErrValidation)
	}
	if c.Burst < 1 {
		return fmt.Errorf("burst must be at least 1, got %d: %w", c.Burst, ErrValidation)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s: %w", c.Timeout, ErrValidation)
	}
	return nil
}
