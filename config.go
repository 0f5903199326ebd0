package examchat

import "time"

// RevealMode selects how revealed text is split into tokens.
type RevealMode string

const (
	// RevealWord reveals whole words; whitespace is written without delay.
	RevealWord RevealMode = "word"
	// RevealGrapheme reveals one user-perceived character at a time.
	RevealGrapheme RevealMode = "grapheme"
)

// Formatter names accepted by Config.Formatter.
const (
	FormatterNative     = "native"
	FormatterCommonMark = "commonmark"
)

// Config carries client settings. Zero values are not meaningful; start from
// DefaultConfig and override.
type Config struct {
	BaseURL           string
	Speed             time.Duration // delay after each revealed token
	ThinkDelay        time.Duration // pause between response arrival and reveal
	Mode              RevealMode
	Formatter         string
	RequestsPerSecond float64
	Burst             int
	Timeout           time.Duration
	Theme             Theme
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "http://localhost:8000",
		Speed:             50 * time.Millisecond,
		ThinkDelay:        800 * time.Millisecond,
		Mode:              RevealWord,
		Formatter:         FormatterNative,
		RequestsPerSecond: 1,
		Burst:             3,
		Timeout:           60 * time.Second,
		Theme:             DefaultTheme(),
	}
}
