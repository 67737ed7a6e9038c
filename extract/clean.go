package extract

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// placeholder is the token the source site prints for an empty cell.
const placeholder = "-"

var innerWhitespace = regexp.MustCompile(`\s+`)

// clean trims and collapses whitespace and maps the placeholder token and the
// empty string to a missing value.
func clean(raw string) *string {
	s := strings.TrimSpace(innerWhitespace.ReplaceAllString(raw, " "))
	if s == "" || s == placeholder {
		return nil
	}
	return &s
}

// nodeText concatenates every text node below n.
func nodeText(n *html.Node) string {
	var buf bytes.Buffer
	collectText(n, &buf)
	return buf.String()
}

func collectText(n *html.Node, buf *bytes.Buffer) {
	if n == nil {
		return
	}
	if n.Type == html.TextNode {
		buf.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, buf)
	}
}
