package export

import (
	"bytes"
	"fmt"

	"studyforge/internal/markdown"

	docx "github.com/fumiama/go-docx"
)

// heading sizes in half-points, largest for h1
var headingSizes = map[int]string{1: "32", 2: "28", 3: "24"}

// BuildDocx converts the renderer's block sequence into a Word document.
func BuildDocx(blocks []markdown.Block) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, block := range blocks {
		switch v := block.(type) {
		case markdown.Heading:
			para := doc.AddParagraph()
			size, ok := headingSizes[v.Level]
			if !ok {
				size = headingSizes[3]
			}
			for _, run := range v.Runs {
				para.AddText(run.Text).Size(size).Bold()
			}
		case markdown.Paragraph:
			addRuns(doc.AddParagraph(), v.Runs)
		case markdown.List:
			for i, item := range v.Items {
				para := doc.AddParagraph()
				if v.Ordered {
					para.AddText(fmt.Sprintf("%d. ", i+1))
				} else {
					para.AddText("• ")
				}
				addRuns(para, item)
			}
		case markdown.Table:
			if err := addTable(doc, v); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("docx: failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}

func addRuns(para *docx.Paragraph, runs []markdown.Run) {
	for _, run := range runs {
		text := para.AddText(run.Text)
		switch {
		case run.Style&markdown.StyleBold != 0:
			text.Bold()
		case run.Style&markdown.StyleItalic != 0:
			text.Italic()
		case run.Style&markdown.StyleUnderline != 0:
			text.Underline("single")
		}
	}
}

func addTable(doc *docx.Docx, table markdown.Table) error {
	cols := len(table.Header)
	for _, row := range table.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil
	}

	tbl := doc.AddTable(len(table.Rows)+1, cols, 8200, nil)
	if len(tbl.TableRows) == 0 {
		return fmt.Errorf("docx: failed to allocate table")
	}

	for c, cell := range table.Header {
		tbl.TableRows[0].TableCells[c].AddParagraph().AddText(cell).Bold()
	}
	for r, row := range table.Rows {
		for c, cell := range row {
			if c >= cols {
				break
			}
			tbl.TableRows[r+1].TableCells[c].AddParagraph().AddText(cell)
		}
	}
	return nil
}
