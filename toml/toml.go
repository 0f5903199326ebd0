// Package toml loads examchat configuration from a TOML file.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fwojciec/examchat"
)

// fileDTO mirrors the config file. Pointer fields distinguish unset keys
// from zero values.
type fileDTO struct {
	BaseURL           *string   `toml:"base_url"`
	SpeedMS           *int      `toml:"speed_ms"`
	ThinkDelayMS      *int      `toml:"think_delay_ms"`
	Mode              *string   `toml:"mode"`
	Formatter         *string   `toml:"formatter"`
	RequestsPerSecond *float64  `toml:"requests_per_second"`
	Burst             *int      `toml:"burst"`
	TimeoutSeconds    *int      `toml:"timeout_seconds"`
	Theme             *themeDTO `toml:"theme"`
}

type themeDTO struct {
	UserMsg *int `toml:"user_msg"`
	BotMsg  *int `toml:"bot_msg"`
	Error   *int `toml:"error"`
	Success *int `toml:"success"`
	Muted   *int `toml:"muted"`
	CodeBg  *int `toml:"code_bg"`
	Accent  *int `toml:"accent"`
	Star    *int `toml:"star"`
}

// DefaultPath returns ~/.examchat/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".examchat", "config.toml"), nil
}

// Load applies the file at path on top of base. An empty path means
// DefaultPath, which may be absent; an explicit path must exist. Unknown
// keys are rejected.
func Load(path string, base examchat.Config) (examchat.Config, error) {
	optional := path == ""
	if optional {
		p, err := DefaultPath()
		if err != nil {
			return base, nil
		}
		path = p
	}
	var dto fileDTO
	md, err := toml.DecodeFile(path, &dto)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return base, nil
		}
		return base, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return base, fmt.Errorf("unknown keys in %s: %s: %w", path, strings.Join(keys, ", "), examchat.ErrValidation)
	}
	return dto.apply(base), nil
}

func (d fileDTO) apply(cfg examchat.Config) examchat.Config {
	if d.BaseURL != nil {
		cfg.BaseURL = *d.BaseURL
	}
	if d.SpeedMS != nil {
		cfg.Speed = time.Duration(*d.SpeedMS) * time.Millisecond
	}
	if d.ThinkDelayMS != nil {
		cfg.ThinkDelay = time.Duration(*d.ThinkDelayMS) * time.Millisecond
	}
	if d.Mode != nil {
		cfg.Mode = examchat.RevealMode(*d.Mode)
	}
	if d.Formatter != nil {
		cfg.Formatter = *d.Formatter
	}
	if d.RequestsPerSecond != nil {
		cfg.RequestsPerSecond = *d.RequestsPerSecond
	}
	if d.Burst != nil {
		cfg.Burst = *d.Burst
	}
	if d.TimeoutSeconds != nil {
		cfg.Timeout = time.Duration(*d.TimeoutSeconds) * time.Second
	}
	if d.Theme != nil {
		cfg.Theme = d.Theme.apply(cfg.Theme)
	}
	return cfg
}

func (d themeDTO) apply(t examchat.Theme) examchat.Theme {
	set := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	set(&t.UserMsg, d.UserMsg)
	set(&t.BotMsg, d.BotMsg)
	set(&t.Error, d.Error)
	set(&t.Success, d.Success)
	set(&t.Muted, d.Muted)
	set(&t.CodeBg, d.CodeBg)
	set(&t.Accent, d.Accent)
	set(&t.Star, d.Star)
	return t
}
