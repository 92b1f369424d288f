package goquery

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// hiddenElements are never rendered, so their content is not visible text.
var hiddenElements = map[string]bool{
	"datalist": true,
	"embed":    true,
	"head":     true,
	"iframe":   true,
	"math":     true,
	"noembed":  true,
	"noframes": true,
	"noscript": true,
	"object":   true,
	"rp":       true,
	"script":   true,
	"style":    true,
	"svg":      true,
	"template": true,
	"title":    true,
}

// blockElements start and end on their own line.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"body": true, "caption": true, "center": true, "dd": true,
	"details": true, "dialog": true, "dir": true, "div": true,
	"dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true,
	"h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hgroup": true, "hr": true,
	"html": true, "legend": true, "li": true, "listing": true,
	"main": true, "menu": true, "nav": true, "ol": true,
	"optgroup": true, "option": true, "plaintext": true, "pre": true,
	"search": true, "section": true, "summary": true, "table": true,
	"tbody": true, "tfoot": true, "thead": true, "tr": true,
	"ul": true, "xmp": true,
}

// preformattedElements keep their whitespace.
var preformattedElements = map[string]bool{
	"listing":   true,
	"plaintext": true,
	"pre":       true,
	"textarea":  true,
	"xmp":       true,
}

// textRun is either literal text or a request for line breaks.
type textRun struct {
	text      string
	breaks    int
	preserved bool
}

// Text returns the visible text of n and its descendants the way a browser
// renders innerText: non-rendered elements are skipped, whitespace collapses
// outside preformatted elements, blocks sit on their own lines, paragraphs
// are separated by a blank line and table cells by tabs.
func Text(n *html.Node) string {
	var runs []textRun
	if n.Type == html.TextNode {
		collectText(&runs, n, false)
	} else {
		pre := n.Type == html.ElementNode && preformattedElements[n.Data]
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collectText(&runs, c, pre)
		}
	}
	return joinRuns(runs)
}

func collectText(runs *[]textRun, n *html.Node, pre bool) {
	switch n.Type {
	case html.TextNode:
		if pre {
			*runs = append(*runs, textRun{text: n.Data, preserved: true})
		} else {
			*runs = append(*runs, textRun{text: collapseWhitespace(n.Data)})
		}
		return
	case html.ElementNode:
	default:
		return
	}

	if !isRendered(n) {
		return
	}
	if n.Data == "br" {
		*runs = append(*runs, textRun{text: "\n", preserved: true})
		return
	}

	breaks := 0
	if n.Data == "p" {
		breaks = 2
	} else if blockElements[n.Data] {
		breaks = 1
	}
	if breaks > 0 {
		*runs = append(*runs, textRun{breaks: breaks})
	}

	childPre := pre || preformattedElements[n.Data]
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(runs, c, childPre)
	}

	if isCell(n) && hasNextCell(n) {
		*runs = append(*runs, textRun{text: "\t", preserved: true})
	}
	if breaks > 0 {
		*runs = append(*runs, textRun{breaks: breaks})
	}
}

// joinRuns concatenates runs, trimming collapsible spaces at line edges and
// merging adjacent break requests into the largest one. Breaks at the very
// start and end are dropped.
func joinRuns(runs []textRun) string {
	var buf bytes.Buffer
	pending := 0
	// skipSpace drops a leading collapsible space from the next run.
	skipSpace := true
	// dangling marks a trailing collapsible space that a break may remove.
	dangling := false

	for _, r := range runs {
		if r.breaks > 0 {
			pending = max(pending, r.breaks)
			continue
		}

		text := r.text
		if !r.preserved && (skipSpace || pending > 0) {
			text = strings.TrimPrefix(text, " ")
		}
		if text == "" {
			continue
		}

		if dangling && (pending > 0 || (r.preserved && isSpace(text[0]))) {
			buf.Truncate(buf.Len() - 1)
		}
		if pending > 0 && buf.Len() > 0 {
			buf.WriteString(strings.Repeat("\n", pending))
		}
		pending = 0

		buf.WriteString(text)
		last := text[len(text)-1]
		dangling = !r.preserved && last == ' '
		skipSpace = isSpace(last)
	}

	if dangling {
		buf.Truncate(buf.Len() - 1)
	}
	return buf.String()
}

// collapseWhitespace replaces every run of ASCII whitespace with one space.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isSpace(c) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		b.WriteByte(c)
		inSpace = false
	}
	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isRendered(n *html.Node) bool {
	if hiddenElements[n.Data] {
		return false
	}
	if hasAttr(n, "hidden") {
		return false
	}
	if n.Data == "dialog" && !hasAttr(n, "open") {
		return false
	}
	return true
}

func isCell(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th")
}

func hasNextCell(n *html.Node) bool {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if isCell(s) {
			return true
		}
	}
	return false
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}
