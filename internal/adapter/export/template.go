// Package export turns rendered content into downloadable documents: report
// and quiz HTML wrapped in fixed A4 page templates for PDF rasterization, and
// a Word document built from the renderer's block sequence.
package export

import "fmt"

const reportPageCSS = `
body {
    font-family: 'Arial', sans-serif;
    line-height: 1.6;
    color: #333;
    max-width: 800px;
    margin: 0 auto;
    padding: 25px 20px 40px 20px;
}
h1, h2, h3 { color: #2c3e50; margin-top: 30px; margin-bottom: 15px; }
h1 { font-size: 28px; border-bottom: 3px solid #3498db; padding-bottom: 10px; }
h2 { font-size: 22px; border-bottom: 1px solid #bdc3c7; padding-bottom: 5px; }
h3 { font-size: 18px; color: #34495e; }
p { margin-bottom: 15px; text-align: justify; }
ul, ol { margin: 15px 0; padding-left: 30px; }
li { margin-bottom: 8px; }
strong { color: #2c3e50; font-weight: 600; }
em { color: #7f8c8d; font-style: italic; }
u { text-decoration: underline; }
table {
    width: 100%;
    border-collapse: collapse;
    margin: 20px 0;
}
th, td {
    border: 1px solid #bdc3c7;
    padding: 12px 8px;
    text-align: left;
    vertical-align: top;
}
th { background-color: #ecf0f1; font-weight: 600; color: #2c3e50; }
tr:nth-child(even) { background-color: #f8f9fa; }
@page { margin: 1in; size: A4; }
`

const quizPageCSS = `
body {
    font-family: Arial, sans-serif;
    padding: 25px 40px 40px 40px;
    line-height: 1.6;
}
.quiz-header { text-align: center; margin-bottom: 40px; border-bottom: 2px solid #333; padding-bottom: 20px; }
.question { margin-bottom: 30px; page-break-inside: avoid; }
.question-title { font-weight: bold; margin-bottom: 10px; font-size: 16px; }
.options { margin-left: 20px; }
.option { margin: 8px 0; }
.answer-key { margin-top: 50px; page-break-before: always; }
@page { margin: 1in; size: A4; }
`

// ReportPage wraps a rendered report fragment in the fixed A4 page template.
func ReportPage(body string) string {
	return page(reportPageCSS, body)
}

// QuizPage wraps a printable quiz fragment in the fixed A4 page template.
func QuizPage(body string) string {
	return page(quizPageCSS, body)
}

func page(css, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>%s</style>
</head>
<body>
%s
</body>
</html>`, css, body)
}
