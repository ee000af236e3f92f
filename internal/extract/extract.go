// Package extract pulls visible text out of HTML so a fetched page or saved
// post can feed the clause segmenter.
package extract

import (
	"strings"

	"golang.org/x/net/html"
)

// Text extracts the visible text from HTML content, skipping script, style,
// noscript and iframe subtrees. Text nodes are joined with single spaces.
func Text(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}
	return visibleText(doc), nil
}

// visibleText walks the node tree collecting text nodes
func visibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				if buf.Len() > 0 {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}
