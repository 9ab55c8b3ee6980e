package markup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripRemovesInlineTags(t *testing.T) {
	in := "[[b]]bold[[/b]] and [[item]]a lamp[[/item]] and [[red]]danger[[/red]]"
	assert.Equal(t, "bold and a lamp and danger", Strip(in, 0))
}

func TestEscapesRenderLiterally(t *testing.T) {
	in := `literal \[[brackets\]] stay`
	assert.Equal(t, "literal [[brackets]] stay", Strip(in, 0))
}

func TestUnknownTagsAreIgnored(t *testing.T) {
	assert.Equal(t, "plain text", Strip("[[sparkly]]plain text[[/sparkly]]", 0))
}

func TestRenderEmitsAnsiForBold(t *testing.T) {
	out := Render("[[b]]hi[[/b]]", 0)
	assert.Contains(t, out, "\x1b[1m")
	assert.Contains(t, out, "\x1b[0m")
	assert.Contains(t, out, "hi")
}

func TestRenderColorTag(t *testing.T) {
	out := Render("[[red]]alarm[[/red]]", 0)
	assert.Contains(t, out, "\x1b[31m")
}

func TestNestedStylesRestoreOuter(t *testing.T) {
	out := Strip("[[dim]]outer [[b]]inner[[/b]] outer again[[/dim]]", 0)
	assert.Equal(t, "outer inner outer again", out)
}

func TestWrappingRespectsWidth(t *testing.T) {
	in := "one two three four five six seven eight nine ten"
	out := Strip(in, 12)
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(line), 12, "line %q", line)
	}
	assert.Equal(t, strings.ReplaceAll(out, "\n", " "), in, "no words lost or reordered")
}

func TestWrappingIgnoresTagLength(t *testing.T) {
	// The tags would blow the width if counted; the visible text fits.
	in := "[[highlight]]ab cd[[/highlight]]"
	out := Strip(in, 5)
	assert.Equal(t, "ab cd", out)
}

func TestCenterBlock(t *testing.T) {
	out := Strip("[[center]]hi[[/center]]", 10)
	assert.Equal(t, "    hi", out)
}

func TestBoxBlockLayout(t *testing.T) {
	out := Strip("[[box]]contents[[/box]]", 40)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.Contains(t, lines[1], "│ contents")
	assert.True(t, strings.HasPrefix(lines[2], "└"))
}

func TestBoxTitleAppearsInTopBorder(t *testing.T) {
	out := Strip("[[box:Report]]line[[/box]]", 40)
	lines := strings.Split(out, "\n")
	assert.Contains(t, lines[0], "Report")
}

func TestBlocksComposeWithPlainText(t *testing.T) {
	in := "before\n[[center]]mid[[/center]]\nafter"
	out := Strip(in, 11)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "before", lines[0])
	assert.Equal(t, "    mid", lines[1])
	assert.Equal(t, "after", lines[2])
}
