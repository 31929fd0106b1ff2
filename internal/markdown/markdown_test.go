package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_HeadingAndStyledParagraph(t *testing.T) {
	blocks := Parse("# Title\n\nSome **bold** and *italic* text.")
	require.Len(t, blocks, 2)

	heading, ok := blocks[0].(Heading)
	require.True(t, ok)
	assert.Equal(t, 1, heading.Level)
	assert.Equal(t, []Run{{Text: "Title"}}, heading.Runs)

	para, ok := blocks[1].(Paragraph)
	require.True(t, ok)
	assert.Equal(t, []Run{
		{Text: "Some "},
		{Text: "bold", Style: StyleBold},
		{Text: " and "},
		{Text: "italic", Style: StyleItalic},
		{Text: " text.", Style: StyleNone},
	}, para.Runs)
}

func TestParse_HeadingLevels(t *testing.T) {
	blocks := Parse("# One\n## Two\n### Three")
	require.Len(t, blocks, 3)
	for i, want := range []int{1, 2, 3} {
		heading, ok := blocks[i].(Heading)
		require.True(t, ok)
		assert.Equal(t, want, heading.Level)
	}
}

func TestParse_LongestHeadingPrefixWins(t *testing.T) {
	blocks := Parse("### Subsection")
	require.Len(t, blocks, 1)
	heading := blocks[0].(Heading)
	assert.Equal(t, 3, heading.Level)
	assert.Equal(t, "Subsection", heading.Runs[0].Text)
}

func TestParseInline_UnderlineAndBoldPriority(t *testing.T) {
	runs := ParseInline("__def__ then **bold**")
	assert.Equal(t, []Run{
		{Text: "def", Style: StyleUnderline},
		{Text: " then "},
		{Text: "bold", Style: StyleBold},
	}, runs)
}

func TestParseInline_BoldResolvedBeforeItalic(t *testing.T) {
	// ** must not be read as two empty italics around "bold"
	runs := ParseInline("**bold**")
	assert.Equal(t, []Run{{Text: "bold", Style: StyleBold}}, runs)
}

func TestParseInline_UnclosedMarkersStayPlain(t *testing.T) {
	runs := ParseInline("a **dangling marker")
	require.Len(t, runs, 1)
	assert.Equal(t, StyleNone, runs[0].Style)
	assert.Equal(t, "a **dangling marker", runs[0].Text)
}

func TestParseInline_BareDoubleAsteriskStaysPlain(t *testing.T) {
	// ** with no closer must not collapse into an empty italic run
	runs := ParseInline("**")
	require.Len(t, runs, 1)
	assert.Equal(t, Run{Text: "**"}, runs[0])

	runs = ParseInline("weight: ** kg")
	require.Len(t, runs, 1)
	assert.Equal(t, "weight: ** kg", runs[0].Text)
}

func TestParse_Table(t *testing.T) {
	blocks := Parse("| A | B |\n|---|---|\n| 1 | 2 |")
	require.Len(t, blocks, 1)

	table, ok := blocks[0].(Table)
	require.True(t, ok)
	assert.Equal(t, []string{"A", "B"}, table.Header)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, []string{"1", "2"}, table.Rows[0])
}

func TestParse_TwoLineTableFragmentIsNotATable(t *testing.T) {
	blocks := Parse("| A | B |\n|---|---|")
	for _, block := range blocks {
		_, isTable := block.(Table)
		assert.False(t, isTable, "header + separator without data rows must not become a table")
	}
	require.NotEmpty(t, blocks)
	_, isPara := blocks[0].(Paragraph)
	assert.True(t, isPara)
}

func TestParse_RaggedTableRowsAreKept(t *testing.T) {
	blocks := Parse("| A | B | C |\n|---|---|---|\n| 1 |\n| 1 | 2 | 3 | 4 |")
	require.Len(t, blocks, 1)
	table := blocks[0].(Table)
	assert.Equal(t, []string{"A", "B", "C"}, table.Header)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"1"}, table.Rows[0])
	assert.Equal(t, []string{"1", "2", "3", "4"}, table.Rows[1])
}

func TestParse_ListsGroupByKind(t *testing.T) {
	blocks := Parse("* one\n* two\n1. first\n2. second\n\ntail")
	require.Len(t, blocks, 3)

	unordered, ok := blocks[0].(List)
	require.True(t, ok)
	assert.False(t, unordered.Ordered)
	require.Len(t, unordered.Items, 2)
	assert.Equal(t, "one", unordered.Items[0][0].Text)

	ordered, ok := blocks[1].(List)
	require.True(t, ok)
	assert.True(t, ordered.Ordered)
	require.Len(t, ordered.Items, 2)
	// ordinal prefix is stripped; numbering is the consumer's concern
	assert.Equal(t, "first", ordered.Items[0][0].Text)
	assert.Equal(t, "second", ordered.Items[1][0].Text)

	_, isPara := blocks[2].(Paragraph)
	assert.True(t, isPara)
}

func TestParse_BlankLinesSeparateParagraphs(t *testing.T) {
	blocks := Parse("\n\nfirst line\nstill first\n\nsecond\n\n\n")
	require.Len(t, blocks, 2)
	first := blocks[0].(Paragraph)
	assert.Equal(t, "first line still first", first.Runs[0].Text)
	second := blocks[1].(Paragraph)
	assert.Equal(t, "second", second.Runs[0].Text)
}

func TestParse_NeverPanicsOnMalformedInput(t *testing.T) {
	inputs := []string{
		"",
		"|",
		"|||",
		"| lone pipe",
		"#",
		"##no space",
		"1.",
		"* ",
		"****",
		"__",
	}
	for _, input := range inputs {
		assert.NotPanics(t, func() { Parse(input) }, "input %q", input)
	}
}

func TestToHTML_Blocks(t *testing.T) {
	html := RenderHTML("# Title\n\nSome **bold** text.\n\n* item\n\n1. step")
	assert.Contains(t, html, "<h1>Title</h1>")
	assert.Contains(t, html, "<p>Some <strong>bold</strong> text.</p>")
	assert.Contains(t, html, "<ul>\n<li>item</li>\n</ul>")
	assert.Contains(t, html, "<ol>\n<li>step</li>\n</ol>")
}

func TestToHTML_Table(t *testing.T) {
	html := RenderHTML("| A | B |\n|---|---|\n| 1 | 2 |")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<thead>")
	assert.Contains(t, html, "<th>A</th><th>B</th>")
	assert.Contains(t, html, "<td>1</td><td>2</td>")
	assert.Contains(t, html, "</tbody>")
}

func TestToHTML_EscapesContent(t *testing.T) {
	html := RenderHTML("a <script> tag and **<b>**")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "<strong>&lt;b&gt;</strong>")
}

func TestToHTML_Underline(t *testing.T) {
	html := RenderHTML("a __key term__ here")
	assert.Contains(t, html, "<u>key term</u>")
}
