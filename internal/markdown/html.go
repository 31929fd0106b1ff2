package markdown

import (
	"fmt"
	"html"
	"strings"
)

// ToHTML renders parsed blocks as an HTML fragment suitable for the browser
// preview and for embedding in the PDF page template.
func ToHTML(blocks []Block) string {
	var b strings.Builder
	for _, block := range blocks {
		switch v := block.(type) {
		case Heading:
			fmt.Fprintf(&b, "<h%d>%s</h%d>\n", v.Level, runsToHTML(v.Runs), v.Level)
		case Paragraph:
			fmt.Fprintf(&b, "<p>%s</p>\n", runsToHTML(v.Runs))
		case List:
			tag := "ul"
			if v.Ordered {
				tag = "ol"
			}
			fmt.Fprintf(&b, "<%s>\n", tag)
			for _, item := range v.Items {
				fmt.Fprintf(&b, "<li>%s</li>\n", runsToHTML(item))
			}
			fmt.Fprintf(&b, "</%s>\n", tag)
		case Table:
			b.WriteString("<table>\n<thead>\n<tr>")
			for _, cell := range v.Header {
				fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(cell))
			}
			b.WriteString("</tr>\n</thead>\n<tbody>\n")
			for _, row := range v.Rows {
				b.WriteString("<tr>")
				for _, cell := range row {
					fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
				}
				b.WriteString("</tr>\n")
			}
			b.WriteString("</tbody>\n</table>\n")
		}
	}
	return b.String()
}

// RenderHTML parses source text and renders it as HTML in one call.
func RenderHTML(source string) string {
	return ToHTML(Parse(source))
}

func runsToHTML(runs []Run) string {
	var b strings.Builder
	for _, run := range runs {
		text := html.EscapeString(run.Text)
		switch {
		case run.Style&StyleBold != 0:
			b.WriteString("<strong>" + text + "</strong>")
		case run.Style&StyleItalic != 0:
			b.WriteString("<em>" + text + "</em>")
		case run.Style&StyleUnderline != 0:
			b.WriteString("<u>" + text + "</u>")
		default:
			b.WriteString(text)
		}
	}
	return b.String()
}
