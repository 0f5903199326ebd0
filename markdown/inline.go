package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/examchat"
)

// Star glyphs recognized ahead of every other inline rule.
var starGlyphs = []string{"★", "⭐"}

// parseInline splits text into spans. Recognition order at each position is
// star glyph, bold, italic, code, link; anything unmatched is literal text.
func parseInline(s string) []examchat.Span {
	if s == "" {
		return nil
	}
	var (
		spans []examchat.Span
		text  strings.Builder
		// Closers already searched for without success. A closer that is
		// missing after one opener is missing after every later one, so
		// each kind of delimiter is scanned to the end at most once.
		noBold   bool
		noItalic bool
		noCode   map[int]bool
	)
	flush := func() {
		if text.Len() == 0 {
			return
		}
		spans = append(spans, examchat.Text{Text: text.String()})
		text.Reset()
	}
	emit := func(span examchat.Span) {
		flush()
		spans = append(spans, span)
	}

scan:
	for i := 0; i < len(s); {
		rest := s[i:]
		for _, g := range starGlyphs {
			if strings.HasPrefix(rest, g) {
				emit(examchat.StarIcon{})
				i += len(g)
				continue scan
			}
		}
		switch s[i] {
		case '*':
			if boldOpener(rest) {
				if inner, n, ok := matchBold(rest, noBold); ok {
					emit(examchat.Bold{Children: parseInline(inner)})
					i += n
					continue
				}
				noBold = true
			}
			if italicOpener(rest) && !noItalic {
				if inner, n, ok := matchItalic(rest); ok {
					emit(examchat.Italic{Children: parseInline(inner)})
					i += n
					continue
				}
				noItalic = true
			}
			text.WriteByte('*')
			i++
			continue
		case '`':
			if open := runLength(rest, '`'); !noCode[open] {
				if code, n, ok := matchCode(rest); ok {
					emit(examchat.Code{Text: code})
					i += n
					continue
				}
				if noCode == nil {
					noCode = make(map[int]bool)
				}
				noCode[open] = true
			}
			// An unmatched run stays literal as a whole so a shorter run
			// inside it cannot open a span.
			run := runLength(rest, '`')
			text.WriteString(rest[:run])
			i += run
			continue
		case '[':
			if label, url, n, ok := matchLink(rest); ok {
				emit(examchat.Link{Label: parseInline(label), URL: url})
				i += n
				continue
			}
		}
		_, size := utf8.DecodeRuneInString(rest)
		text.WriteString(rest[:size])
		i += size
	}
	flush()
	return spans
}

// boldOpener reports whether s starts with "**" followed by a non-blank
// and is long enough to hold a closed span.
func boldOpener(s string) bool {
	return strings.HasPrefix(s, "**") && len(s) >= 5 && !isBlank(s[2])
}

// matchBold matches "**inner**" at the start of s. The opener must be
// followed by a non-blank and the closer preceded by one. When the closer is
// part of a longer run of stars, the last two close the span so
// "***x***" nests italic inside bold. With exhausted set, only a closer in
// the star run the opener itself starts is considered.
func matchBold(s string, exhausted bool) (string, int, bool) {
	if !boldOpener(s) {
		return "", 0, false
	}
	for j := 3; j < len(s); j++ {
		if exhausted && (j > 3 || s[2] != '*') {
			break
		}
		if s[j] != '*' {
			continue
		}
		run := runLength(s[j:], '*')
		if run >= 2 && !isBlank(s[j-1]) {
			end := j + run - 2
			return s[2:end], j + run, true
		}
		j += run - 1
	}
	return "", 0, false
}

// matchItalic matches "*inner*" at the start of s. Runs of two stars inside
// the span are skipped so a nested bold does not close it; an odd run closes
// the span on its last star.
func matchItalic(s string) (string, int, bool) {
	if !italicOpener(s) {
		return "", 0, false
	}
	for j := 2; j < len(s); j++ {
		if s[j] != '*' {
			continue
		}
		run := runLength(s[j:], '*')
		if run%2 == 1 && !isBlank(s[j-1]) {
			end := j + run - 1
			return s[1:end], j + run, true
		}
		j += run - 1
	}
	return "", 0, false
}

func italicOpener(s string) bool {
	return len(s) >= 3 && s[0] == '*' && s[1] != '*' && !isBlank(s[1])
}

// matchCode matches a backtick run closed by the next run of the same
// length. Content is returned verbatim.
func matchCode(s string) (string, int, bool) {
	open := runLength(s, '`')
	for j := open; j < len(s); {
		if s[j] != '`' {
			j++
			continue
		}
		run := runLength(s[j:], '`')
		if run == open {
			return s[open:j], j + run, true
		}
		j += run
	}
	return "", 0, false
}

// matchLink matches "[label](url)" with a non-empty label and url.
func matchLink(s string) (string, string, int, bool) {
	closeLabel := strings.IndexByte(s, ']')
	if closeLabel <= 1 || closeLabel+1 >= len(s) || s[closeLabel+1] != '(' {
		return "", "", 0, false
	}
	urlStart := closeLabel + 2
	closeURL := strings.IndexByte(s[urlStart:], ')')
	if closeURL < 0 {
		return "", "", 0, false
	}
	url := strings.TrimSpace(s[urlStart : urlStart+closeURL])
	if url == "" {
		return "", "", 0, false
	}
	return s[1:closeLabel], url, urlStart + closeURL + 1, true
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n'
}
