// Package markdown implements the constrained markdown dialect emitted by the
// content generator: #/##/### headings, **bold**, *italic*, __underline__,
// unordered (*) and ordered (N.) list items, and GitHub-style pipe tables.
// Parsing is best-effort and never fails; anything malformed degrades to a
// plain paragraph.
package markdown

import "strings"

// Style is a bitmask of inline styles applied to a run of text.
type Style uint8

const (
	StyleNone      Style = 0
	StyleBold      Style = 1 << 0
	StyleItalic    Style = 1 << 1
	StyleUnderline Style = 1 << 2
)

// Run is a span of text carrying a single style.
type Run struct {
	Text  string
	Style Style
}

// Block is a block-level output node: Heading, Paragraph, List or Table.
type Block interface {
	block()
}

// Heading is a level 1-3 section heading.
type Heading struct {
	Level int
	Runs  []Run
}

// Paragraph is a run sequence terminated by a blank line.
type Paragraph struct {
	Runs []Run
}

// List groups consecutive list items of the same kind. Ordinal prefixes of
// ordered items are stripped; numbering is the consumer's concern.
type List struct {
	Ordered bool
	Items   [][]Run
}

// Table holds header cells and data rows. Rows are emitted as-is even when
// their cell count differs from the header.
type Table struct {
	Header []string
	Rows   [][]string
}

func (Heading) block()   {}
func (Paragraph) block() {}
func (List) block()      {}
func (Table) block()     {}

// Parse converts source text into a sequence of block-level nodes in one pass.
// The block sequence is the docBlocks target; ToHTML renders the html target
// from the same nodes.
func Parse(source string) []Block {
	lines := strings.Split(strings.ReplaceAll(source, "\r\n", "\n"), "\n")

	var blocks []Block
	var para []string
	var list *List

	flushPara := func() {
		if len(para) > 0 {
			blocks = append(blocks, Paragraph{Runs: ParseInline(strings.Join(para, " "))})
			para = nil
		}
	}
	flushList := func() {
		if list != nil {
			blocks = append(blocks, *list)
			list = nil
		}
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		// Table spans take priority over every other construct. A table is at
		// least header + separator + one data row; shorter pipe runs fall
		// through to paragraph handling.
		if isPipeLine(line) {
			end := i
			for end < len(lines) && isPipeLine(lines[end]) {
				end++
			}
			if end-i >= 3 && isSeparatorRow(lines[i+1]) {
				flushPara()
				flushList()
				table := Table{Header: splitCells(line)}
				for _, row := range lines[i+2 : end] {
					table.Rows = append(table.Rows, splitCells(row))
				}
				blocks = append(blocks, table)
				i = end - 1
				continue
			}
		}

		// Longest heading prefix first so ### is not read as # + "##".
		if level, text, ok := headingLine(line); ok {
			flushPara()
			flushList()
			blocks = append(blocks, Heading{Level: level, Runs: ParseInline(text)})
			continue
		}

		if item, ordered, ok := listItemLine(line); ok {
			flushPara()
			if list != nil && list.Ordered != ordered {
				flushList()
			}
			if list == nil {
				list = &List{Ordered: ordered}
			}
			list.Items = append(list.Items, ParseInline(item))
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushPara()
			flushList()
			continue
		}

		flushList()
		para = append(para, line)
	}
	flushPara()
	flushList()

	return blocks
}

func headingLine(line string) (level int, text string, ok bool) {
	switch {
	case strings.HasPrefix(line, "### "):
		return 3, line[4:], true
	case strings.HasPrefix(line, "## "):
		return 2, line[3:], true
	case strings.HasPrefix(line, "# "):
		return 1, line[2:], true
	}
	return 0, "", false
}

func listItemLine(line string) (item string, ordered bool, ok bool) {
	if strings.HasPrefix(line, "* ") {
		return line[2:], false, true
	}
	rest := strings.TrimLeft(line, "0123456789")
	if len(rest) < len(line) && strings.HasPrefix(rest, ". ") {
		return rest[2:], true, true
	}
	return "", false, false
}

func isPipeLine(line string) bool {
	return strings.TrimSpace(line) != "" && strings.Contains(line, "|")
}

// isSeparatorRow reports whether the line is a table separator such as
// "|---|:--:|": every cell consists of dashes, colons and whitespace only.
func isSeparatorRow(line string) bool {
	cells := 0
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		if strings.Trim(cell, "-:") != "" {
			return false
		}
		cells++
	}
	return cells > 0
}

// splitCells splits a table row on pipes, trimming each cell and discarding
// the empty artifacts produced by leading and trailing pipes.
func splitCells(line string) []string {
	var cells []string
	for _, cell := range strings.Split(line, "|") {
		cell = strings.TrimSpace(cell)
		if cell != "" {
			cells = append(cells, cell)
		}
	}
	return cells
}

// ParseInline splits a line into styled runs, left to right, non-nested.
// ** is resolved before single * so bold never misparses as nested italics.
func ParseInline(text string) []Run {
	var runs []Run
	var plain strings.Builder

	flush := func() {
		if plain.Len() > 0 {
			runs = append(runs, Run{Text: plain.String()})
			plain.Reset()
		}
	}

	i := 0
	for i < len(text) {
		if strings.HasPrefix(text[i:], "**") {
			if end := strings.Index(text[i+2:], "**"); end >= 0 {
				flush()
				runs = append(runs, Run{Text: text[i+2 : i+2+end], Style: StyleBold})
				i += end + 4
				continue
			}
		}
		if strings.HasPrefix(text[i:], "__") {
			if end := strings.Index(text[i+2:], "__"); end >= 0 {
				flush()
				runs = append(runs, Run{Text: text[i+2 : i+2+end], Style: StyleUnderline})
				i += end + 4
				continue
			}
		}
		if text[i] == '*' {
			// an empty span means the closer is the stray half of an unclosed
			// ** marker; leave both characters plain
			if end := strings.Index(text[i+1:], "*"); end > 0 {
				flush()
				runs = append(runs, Run{Text: text[i+1 : i+1+end], Style: StyleItalic})
				i += end + 2
				continue
			}
		}
		plain.WriteByte(text[i])
		i++
	}
	flush()

	return runs
}
