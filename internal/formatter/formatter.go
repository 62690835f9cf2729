// Package formatter turns the markdown-flavoured text returned by the model
// into a flat tree of display nodes. It is a decoration pass: every line ends
// up in some node, nothing is rejected, and the tree is not meant to be
// turned back into the original text.
package formatter

import (
	"regexp"
	"strings"
)

type Kind string

const (
	KindHeading     Kind = "heading"
	KindParagraph   Kind = "paragraph"
	KindList        Kind = "list"
	KindOrderedList Kind = "ordered_list"
	KindQuote       Kind = "quote"
	KindCode        Kind = "code"
	KindRule        Kind = "rule"
)

type SpanKind string

const (
	SpanText   SpanKind = "text"
	SpanStrong SpanKind = "strong"
	SpanCode   SpanKind = "code"
)

type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

type Node struct {
	Kind  Kind     `json:"kind"`
	Level int      `json:"level,omitempty"`
	Style string   `json:"style,omitempty"`
	Spans []Span   `json:"spans,omitempty"`
	Items [][]Span `json:"items,omitempty"`
	Text  string   `json:"text,omitempty"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Cosmetic wrappers, by heading level. Levels deeper than 4 share the last one.
var headingStyles = [...]string{"", "feature-box", "section-box", "accent-bar", "minimal"}

var (
	headingRe = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	ruleRe    = regexp.MustCompile(`^(\*{3,}|-{3,}|_{3,})$`)
	bulletRe  = regexp.MustCompile(`^\s*[-*+]\s+(.+)`)
	orderedRe = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)`)
	quoteRe   = regexp.MustCompile(`^>\s?(.*)`)
	fenceRe   = regexp.MustCompile("^\\s*```")
	inlineRe  = regexp.MustCompile("\\*\\*([^*]+)\\*\\*|`([^`]+)`")
)

type builder struct {
	nodes []Node
	para  []string
	quote []string
	list  *Node
}

// Render never fails; text without any markup comes back as paragraphs.
func Render(markup string) Tree {
	b := &builder{}
	lines := strings.Split(strings.ReplaceAll(markup, "\r\n", "\n"), "\n")

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " \t")
		trimmed := strings.TrimSpace(line)

		if fenceRe.MatchString(line) {
			b.flush()
			var code []string
			for i++; i < len(lines) && !fenceRe.MatchString(lines[i]); i++ {
				code = append(code, lines[i])
			}
			b.nodes = append(b.nodes, Node{Kind: KindCode, Text: strings.Join(code, "\n")})
			continue
		}

		switch {
		case trimmed == "":
			b.flush()
		case headingRe.MatchString(trimmed):
			b.flush()
			m := headingRe.FindStringSubmatch(trimmed)
			level := len(m[1])
			b.nodes = append(b.nodes, Node{
				Kind:  KindHeading,
				Level: level,
				Style: headingStyles[min(level, len(headingStyles)-1)],
				Spans: inline(m[2]),
			})
		case ruleRe.MatchString(trimmed):
			b.flush()
			b.nodes = append(b.nodes, Node{Kind: KindRule})
		case bulletRe.MatchString(line):
			b.addItem(KindList, bulletRe.FindStringSubmatch(line)[1])
		case orderedRe.MatchString(line):
			b.addItem(KindOrderedList, orderedRe.FindStringSubmatch(line)[1])
		case quoteRe.MatchString(trimmed):
			b.flushPara()
			b.flushList()
			b.quote = append(b.quote, strings.TrimSpace(quoteRe.FindStringSubmatch(trimmed)[1]))
		default:
			b.flushQuote()
			b.flushList()
			b.para = append(b.para, trimmed)
		}
	}
	b.flush()

	if b.nodes == nil {
		b.nodes = []Node{}
	}
	return Tree{Nodes: b.nodes}
}

func (b *builder) addItem(kind Kind, text string) {
	b.flushPara()
	b.flushQuote()
	if b.list != nil && b.list.Kind != kind {
		b.flushList()
	}
	if b.list == nil {
		b.list = &Node{Kind: kind}
	}
	b.list.Items = append(b.list.Items, inline(strings.TrimSpace(text)))
}

func (b *builder) flush() {
	b.flushPara()
	b.flushQuote()
	b.flushList()
}

func (b *builder) flushPara() {
	if len(b.para) == 0 {
		return
	}
	b.nodes = append(b.nodes, Node{Kind: KindParagraph, Spans: inline(strings.Join(b.para, " "))})
	b.para = nil
}

func (b *builder) flushQuote() {
	if len(b.quote) == 0 {
		return
	}
	b.nodes = append(b.nodes, Node{Kind: KindQuote, Spans: inline(strings.Join(b.quote, " "))})
	b.quote = nil
}

func (b *builder) flushList() {
	if b.list == nil {
		return
	}
	b.nodes = append(b.nodes, *b.list)
	b.list = nil
}

// inline splits text into plain, bold and code spans.
func inline(text string) []Span {
	var spans []Span
	last := 0
	for _, m := range inlineRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Kind: SpanText, Text: text[last:m[0]]})
		}
		if m[2] >= 0 {
			spans = append(spans, Span{Kind: SpanStrong, Text: text[m[2]:m[3]]})
		} else {
			spans = append(spans, Span{Kind: SpanCode, Text: text[m[4]:m[5]]})
		}
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Kind: SpanText, Text: text[last:]})
	}
	return spans
}
