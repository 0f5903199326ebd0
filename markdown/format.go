package markdown

import (
	"strconv"
	"strings"

	"github.com/fwojciec/examchat"
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineText
	lineHeading
	lineBullet
	lineOrdered
	lineRule
	lineFence       // opening or closing ``` with optional language tag
	lineInlineFence // ```body``` on a single line
)

type line struct {
	kind  lineKind
	level int    // heading level
	num   int    // ordered item number
	text  string // payload: heading/item text, fence language, inline fence body
}

// Format converts raw response text into a Document. It is total: every
// string is valid input, and the worst case is a paragraph of literal text.
func Format(raw string) examchat.Document {
	if raw == "" {
		return examchat.Document{}
	}
	p := &blockParser{lines: strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")}
	p.parse()
	return examchat.Document{Blocks: p.blocks}
}

type blockParser struct {
	lines  []string
	blocks []examchat.Block

	para []string
	list *examchat.List
}

func (p *blockParser) parse() {
	for i := 0; i < len(p.lines); i++ {
		src := p.lines[i]
		ln := classify(src)
		switch ln.kind {
		case lineBlank:
			p.flush()
		case lineHeading:
			p.flush()
			p.blocks = append(p.blocks, examchat.Heading{Level: ln.level, Content: parseInline(ln.text)})
		case lineRule:
			p.flush()
			p.blocks = append(p.blocks, examchat.Rule{})
		case lineInlineFence:
			p.flush()
			p.blocks = append(p.blocks, examchat.CodeBlock{Text: ln.text})
		case lineFence:
			p.flush()
			end := p.closingFence(i + 1)
			if end < 0 {
				// Unclosed fence: keep the fence line as literal text.
				p.blocks = append(p.blocks, examchat.RawInline{
					Content: []examchat.Span{examchat.Text{Text: strings.TrimSpace(src)}},
				})
				continue
			}
			p.blocks = append(p.blocks, examchat.CodeBlock{
				Lang: ln.text,
				Text: strings.Join(p.lines[i+1:end], "\n"),
			})
			i = end
		case lineBullet, lineOrdered:
			p.flushParagraph()
			ordered := ln.kind == lineOrdered
			if p.list != nil && p.list.Ordered != ordered {
				p.flushList()
			}
			if p.list == nil {
				p.list = &examchat.List{Ordered: ordered, Start: ln.num}
			}
			p.list.Items = append(p.list.Items, parseInline(ln.text))
		default:
			p.flushList()
			p.text(strings.TrimSpace(src))
		}
	}
	p.flush()
}

// text adds a paragraph line. A ```body``` pair inside the line is lifted
// out into its own CodeBlock, splitting the paragraph around it.
func (p *blockParser) text(s string) {
	for {
		open := strings.Index(s, "```")
		if open < 0 {
			break
		}
		n := strings.Index(s[open+3:], "```")
		if n < 0 {
			break
		}
		if before := strings.TrimSpace(s[:open]); before != "" {
			p.para = append(p.para, before)
		}
		p.flushParagraph()
		p.blocks = append(p.blocks, examchat.CodeBlock{Text: s[open+3 : open+3+n]})
		s = strings.TrimSpace(s[open+3+n+3:])
	}
	if s != "" {
		p.para = append(p.para, s)
	}
}

// closingFence returns the index of the first bare ``` line at or after
// from, or -1.
func (p *blockParser) closingFence(from int) int {
	for j := from; j < len(p.lines); j++ {
		if strings.TrimSpace(p.lines[j]) == "```" {
			return j
		}
	}
	return -1
}

func (p *blockParser) flush() {
	p.flushParagraph()
	p.flushList()
}

func (p *blockParser) flushParagraph() {
	if len(p.para) == 0 {
		return
	}
	p.blocks = append(p.blocks, examchat.Paragraph{Content: parseInline(strings.Join(p.para, "\n"))})
	p.para = nil
}

func (p *blockParser) flushList() {
	if p.list == nil {
		return
	}
	p.blocks = append(p.blocks, *p.list)
	p.list = nil
}

// classify matches a line against the block patterns, most specific first.
func classify(s string) line {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return line{kind: lineBlank}
	}
	if strings.HasPrefix(trimmed, "```") {
		if len(trimmed) >= 6 && strings.HasSuffix(trimmed, "```") {
			return line{kind: lineInlineFence, text: trimmed[3 : len(trimmed)-3]}
		}
		if info := strings.TrimSpace(trimmed[3:]); isLangTag(info) {
			return line{kind: lineFence, text: info}
		}
		return line{kind: lineText}
	}
	if trimmed == "---" {
		return line{kind: lineRule}
	}
	for level, prefix := range []string{"### ", "## ", "# "} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			return line{kind: lineHeading, level: 3 - level, text: strings.TrimSpace(rest)}
		}
	}
	left := strings.TrimLeft(s, " \t")
	if num, rest, ok := cutOrdered(left); ok {
		return line{kind: lineOrdered, num: num, text: rest}
	}
	for _, marker := range []string{"•", "-"} {
		if rest, ok := cutMarker(left, marker); ok {
			return line{kind: lineBullet, text: rest}
		}
	}
	return line{kind: lineText}
}

// cutMarker strips marker when it is followed by at least one blank.
func cutMarker(s, marker string) (string, bool) {
	rest, ok := strings.CutPrefix(s, marker)
	if !ok || rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// cutOrdered matches "<digits>. " with at most nine digits.
func cutOrdered(s string) (int, string, bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i > 9 {
		return 0, "", false
	}
	rest, ok := cutMarker(s[i:], ".")
	if !ok {
		return 0, "", false
	}
	num, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, "", false
	}
	return num, rest, true
}

func isLangTag(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '+', r == '#', r == '.':
		default:
			return false
		}
	}
	return true
}
