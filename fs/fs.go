// Package fs loads documents from the local filesystem for the render
// command.
package fs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fwojciec/examchat"
	"github.com/fwojciec/examchat/json"
)

// Expand resolves a path argument to the files it names. Arguments without
// glob metacharacters are returned as is. Patterns support ** for recursive
// matching and are resolved from their literal leading directory. Matches
// are sorted.
func Expand(arg string) ([]string, error) {
	if !hasMeta(arg) {
		return []string{arg}, nil
	}
	slashed := filepath.ToSlash(arg)
	if !doublestar.ValidatePattern(slashed) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", arg, examchat.ErrValidation)
	}

	base, pattern := doublestar.SplitPattern(slashed)
	root := filepath.FromSlash(base)
	var matches []string
	err := doublestar.GlobWalk(os.DirFS(root), pattern, func(path string, d iofs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", arg, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files match %q: %w", arg, os.ErrNotExist)
	}
	sort.Strings(matches)
	return matches, nil
}

// Load reads the document at path. Files ending in .json are decoded as
// saved documents; anything else is formatted with format.
func Load(path string, format func(string) examchat.Document) (examchat.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Load(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return examchat.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return format(string(data)), nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
