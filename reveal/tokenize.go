package reveal

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Tokenize splits s into alternating runs of whitespace and non-whitespace.
// In ModeGrapheme each non-whitespace run is further split into grapheme
// clusters. Joining the tokens always yields s.
func Tokenize(s string, mode Mode) []string {
	var tokens []string
	for len(s) > 0 {
		space := isSpaceAt(s, 0)
		i := 0
		for i < len(s) && isSpaceAt(s, i) == space {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
		}
		run := s[:i]
		s = s[i:]
		if space || mode != ModeGrapheme {
			tokens = append(tokens, run)
			continue
		}
		state := -1
		for len(run) > 0 {
			var cluster string
			cluster, run, _, state = uniseg.FirstGraphemeClusterInString(run, state)
			tokens = append(tokens, cluster)
		}
	}
	return tokens
}

// IsSpace reports whether token is a whitespace token. Whitespace tokens
// never suspend a reveal.
func IsSpace(token string) bool {
	return token != "" && isSpaceAt(token, 0)
}

func isSpaceAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return unicode.IsSpace(r)
}
