// Package markup renders the inline/block tag language used by world
// authors into ANSI-styled, width-wrapped terminal text. Rendering is pure
// text to text; Strip produces the same layout without escape codes, which
// is what the tests exercise.
//
// Inline tags: [[b]] [[u]] [[i]] [[dim]], color tags ([[red]], [[cyan]],
// ...), and theme tags ([[item]], [[npc]], [[room]], [[highlight]],
// [[triggered]], [[denied]]) closed by the matching [[/tag]].
// Block tags: [[center]]...[[/center]] and [[box]] / [[box:Title]] ...
// [[/box]]. The sequences \[[ and \]] render as literal brackets.
package markup

import "strings"

const (
	ansiReset     = "\x1b[0m"
	ansiBold      = "\x1b[1m"
	ansiDim       = "\x1b[2m"
	ansiItalic    = "\x1b[3m"
	ansiUnderline = "\x1b[4m"
)

var ansiColors = map[string]string{
	"black":   "\x1b[30m",
	"red":     "\x1b[31m",
	"green":   "\x1b[32m",
	"yellow":  "\x1b[33m",
	"blue":    "\x1b[34m",
	"magenta": "\x1b[35m",
	"cyan":    "\x1b[36m",
	"white":   "\x1b[37m",
}

// Theme tags expand to a base style; worlds use them so that presentation
// stays consistent without naming raw colors.
var themeStyles = map[string]style{
	"item":      {color: "cyan"},
	"npc":       {color: "yellow"},
	"room":      {color: "green", bold: true},
	"highlight": {bold: true},
	"triggered": {color: "magenta"},
	"denied":    {color: "red"},
}

type style struct {
	bold, dim, italic, underline bool
	color                        string
}

func (s style) codes() string {
	if !s.bold && !s.dim && !s.italic && !s.underline && s.color == "" {
		return ""
	}
	var b strings.Builder
	if s.bold {
		b.WriteString(ansiBold)
	}
	if s.dim {
		b.WriteString(ansiDim)
	}
	if s.italic {
		b.WriteString(ansiItalic)
	}
	if s.underline {
		b.WriteString(ansiUnderline)
	}
	if c, ok := ansiColors[s.color]; ok {
		b.WriteString(c)
	}
	return b.String()
}

// span is a run of text under one resolved style.
type span struct {
	text  string
	style style
}

// parseSpans tokenizes out tags and escapes; returns the spans of styled text.
func parseSpans(input string) []span {
	var spans []span
	stack := []style{{}}
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			spans = append(spans, span{text: buf.String(), style: stack[len(stack)-1]})
			buf.Reset()
		}
	}

	for i := 0; i < len(input); {
		if strings.HasPrefix(input[i:], `\[[`) {
			buf.WriteString("[[")
			i += 3
			continue
		}
		if strings.HasPrefix(input[i:], `\]]`) {
			buf.WriteString("]]")
			i += 3
			continue
		}
		if strings.HasPrefix(input[i:], "[[") {
			end := strings.Index(input[i:], "]]")
			if end < 0 {
				buf.WriteString(input[i:])
				break
			}
			tag := input[i+2 : i+end]
			i += end + 2
			flush()
			stack = applyTag(stack, tag)
			continue
		}
		buf.WriteByte(input[i])
		i++
	}
	flush()
	return spans
}

func applyTag(stack []style, tag string) []style {
	tag = strings.TrimSpace(strings.ToLower(tag))
	if closed := strings.TrimPrefix(tag, "/"); closed != tag {
		// Any close tag pops one level; authors do not interleave.
		if len(stack) > 1 {
			return stack[:len(stack)-1]
		}
		return stack
	}
	next := stack[len(stack)-1]
	switch tag {
	case "b":
		next.bold = true
	case "dim":
		next.dim = true
	case "i":
		next.italic = true
	case "u":
		next.underline = true
	default:
		if th, ok := themeStyles[tag]; ok {
			if th.color != "" {
				next.color = th.color
			}
			next.bold = next.bold || th.bold
			next.dim = next.dim || th.dim
		} else if _, ok := ansiColors[tag]; ok {
			next.color = tag
		} else {
			// Unknown tag: ignore, keep current style.
			return stack
		}
	}
	return append(stack, next)
}

// renderSpans emits ANSI for each span, resetting between style changes.
func renderSpans(spans []span) string {
	var b strings.Builder
	for _, sp := range spans {
		codes := sp.style.codes()
		if codes == "" {
			b.WriteString(sp.text)
			continue
		}
		b.WriteString(codes)
		b.WriteString(sp.text)
		b.WriteString(ansiReset)
	}
	return b.String()
}

// Strip removes all tags and resolves escapes, leaving plain text with the
// original block layout (width applies as in Render).
func Strip(input string, width int) string {
	return render(input, width, true)
}

// Render resolves tags to ANSI styling, wraps to width, and lays out
// center and box blocks. Width <= 0 disables wrapping.
func Render(input string, width int) string {
	return render(input, width, false)
}

func render(input string, width int, plain bool) string {
	var out []string
	for _, blk := range parseBlocks(input) {
		switch blk.kind {
		case blockPlain:
			out = append(out, wrapStyled(blk.body, width, plain)...)
		case blockCenter:
			for _, line := range wrapStyled(blk.body, width, plain) {
				out = append(out, centerLine(line, width))
			}
		case blockBox:
			out = append(out, renderBox(blk, width, plain)...)
		}
	}
	return strings.Join(out, "\n")
}

type blockKind int

const (
	blockPlain blockKind = iota
	blockCenter
	blockBox
)

type block struct {
	kind  blockKind
	title string
	body  string
}

// parseBlocks splits the input into plain runs and center/box blocks.
// Blocks do not nest.
func parseBlocks(input string) []block {
	var blocks []block
	for len(input) > 0 {
		idx, kind, title, tagLen := nextBlockTag(input)
		if idx < 0 {
			blocks = append(blocks, block{kind: blockPlain, body: input})
			break
		}
		if idx > 0 {
			blocks = append(blocks, block{kind: blockPlain, body: strings.TrimRight(input[:idx], "\n")})
		}
		rest := input[idx+tagLen:]
		closeTag := "[[/center]]"
		if kind == blockBox {
			closeTag = "[[/box]]"
		}
		end := strings.Index(rest, closeTag)
		if end < 0 {
			blocks = append(blocks, block{kind: kind, title: title, body: rest})
			break
		}
		blocks = append(blocks, block{kind: kind, title: title, body: strings.Trim(rest[:end], "\n")})
		input = strings.TrimLeft(rest[end+len(closeTag):], "\n")
	}
	return blocks
}

// nextBlockTag locates the earliest center/box open tag outside an escape.
func nextBlockTag(input string) (idx int, kind blockKind, title string, tagLen int) {
	for i := 0; i+2 <= len(input); i++ {
		if i > 0 && input[i-1] == '\\' {
			continue
		}
		if !strings.HasPrefix(input[i:], "[[") {
			continue
		}
		end := strings.Index(input[i:], "]]")
		if end < 0 {
			break
		}
		tag := input[i+2 : i+end]
		lower := strings.ToLower(tag)
		if lower == "center" {
			return i, blockCenter, "", end + 2
		}
		if lower == "box" || strings.HasPrefix(lower, "box:") {
			if colon := strings.Index(tag, ":"); colon >= 0 {
				title = strings.TrimSpace(tag[colon+1:])
			}
			return i, blockBox, title, end + 2
		}
	}
	return -1, 0, "", 0
}

// wrapStyled wraps the body to width and styles each line. Wrapping
// happens on the stripped text so that escape codes never split words.
func wrapStyled(body string, width int, plain bool) []string {
	var out []string
	for _, para := range strings.Split(body, "\n") {
		for _, line := range wrapLine(para, width) {
			if plain {
				out = append(out, stripSpans(line))
			} else {
				out = append(out, renderSpans(parseSpans(line)))
			}
		}
	}
	return out
}

func stripSpans(line string) string {
	var b strings.Builder
	for _, sp := range parseSpans(line) {
		b.WriteString(sp.text)
	}
	return b.String()
}

// wrapLine greedily wraps one paragraph by visible width, keeping tags
// attached to their words.
func wrapLine(line string, width int) []string {
	if width <= 0 || visibleLen(line) <= width {
		return []string{line}
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}
	var out []string
	current := words[0]
	for _, word := range words[1:] {
		if visibleLen(current)+1+visibleLen(word) > width {
			out = append(out, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(out, current)
}

// visibleLen counts display runes after tag stripping.
func visibleLen(s string) int {
	return len([]rune(stripSpans(s)))
}

func centerLine(line string, width int) string {
	pad := (width - visibleRendered(line)) / 2
	if pad <= 0 {
		return line
	}
	return strings.Repeat(" ", pad) + line
}

// visibleRendered counts display runes of an already-rendered line,
// skipping ANSI escapes.
func visibleRendered(line string) int {
	count := 0
	inEscape := false
	for _, r := range line {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			count++
		}
	}
	return count
}

// renderBox draws the body inside a single-line border, with the optional
// title embedded in the top edge.
func renderBox(blk block, width int, plain bool) []string {
	inner := width - 4
	if inner < 8 {
		inner = 8
	}
	lines := wrapStyled(blk.body, inner, plain)
	content := 0
	for _, l := range lines {
		if n := visibleRendered(l); n > content {
			content = n
		}
	}
	if t := len([]rune(blk.title)); t+2 > content {
		content = t + 2
	}

	var out []string
	top := "┌" + strings.Repeat("─", content+2) + "┐"
	if blk.title != "" {
		label := " " + blk.title + " "
		fill := content + 2 - len([]rune(label)) - 1
		if fill < 0 {
			fill = 0
		}
		top = "┌─" + label + strings.Repeat("─", fill) + "┐"
	}
	out = append(out, top)
	for _, l := range lines {
		pad := content - visibleRendered(l)
		out = append(out, "│ "+l+strings.Repeat(" ", pad)+" │")
	}
	out = append(out, "└"+strings.Repeat("─", content+2)+"┘")
	return out
}
