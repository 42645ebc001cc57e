package publisher

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

const pageStyle = `body{font-family:Arial,Helvetica,sans-serif;font-size:12pt;line-height:1.5;color:#2E4053;margin:0 1.5cm;}
h1,h2,h3{color:#2c3e50;margin:1em 0 0.6em;}
table{border-collapse:collapse;}td,th{border:1px solid #ccc;padding:4px 8px;}
pre,code{font-family:Menlo,Consolas,monospace;font-size:10pt;}`

func mdToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// extractTitle returns the plain text of the first non-empty level-one
// heading, if any. Headings inside code blocks are not headings.
func extractTitle(src string) string {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level == 1 {
			if t := strings.TrimSpace(inlineText(h, source)); t != "" {
				title = t
				return ast.WalkStop, nil
			}
		}
		return ast.WalkSkipChildren, nil
	})
	return title
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

// htmlDocument wraps converted markdown into a standalone UTF-8 page the
// engine can print.
func htmlDocument(title, body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	b.WriteString(fmt.Sprintf("<title>%s</title>", html.EscapeString(title)))
	b.WriteString("<style>")
	b.WriteString(pageStyle)
	b.WriteString("</style></head><body>\n")
	b.WriteString(body)
	b.WriteString("\n</body></html>\n")
	return b.String()
}
