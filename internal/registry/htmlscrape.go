package registry

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

// parseHTML decodes the body to UTF-8 based on the Content-Type header and
// in-document hints, then parses it. Belarusian registry pages still ship
// windows-1251.
func parseHTML(body io.Reader, contentType string) (*html.Node, error) {
	reader, err := charset.NewReader(body, contentType)
	if err != nil {
		return nil, err
	}
	return html.Parse(reader)
}

// findElement returns the first element with the given tag, depth-first.
func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findElementWithClass returns the first element with the tag carrying the
// given class token.
func findElementWithClass(n *html.Node, tag, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		for _, a := range n.Attr {
			if a.Key != "class" {
				continue
			}
			for _, token := range strings.Fields(a.Val) {
				if token == class {
					return n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElementWithClass(c, tag, class); found != nil {
			return found
		}
	}
	return nil
}

// nodeText concatenates the text content of a node, collapsed and trimmed.
func nodeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(b.String()), " ")
}

// anchorTexts collects the visible text of every anchor whose href starts
// with the given scheme prefix ("tel:", "mailto:"). Duplicates are dropped,
// order is preserved.
func anchorTexts(n *html.Node, prefix string) []string {
	var out []string
	seen := make(map[string]struct{})
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" && strings.HasPrefix(a.Val, prefix) {
					text := nodeText(n)
					if text == "" {
						text = strings.TrimPrefix(a.Val, prefix)
					}
					if text != "" {
						if _, dup := seen[text]; !dup {
							seen[text] = struct{}{}
							out = append(out, text)
						}
					}
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// anchorHrefContaining returns the href of the first anchor whose href
// contains the given substring.
func anchorHrefContaining(n *html.Node, substr string) string {
	var found string
	var walk func(*html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key == "href" && strings.Contains(a.Val, substr) {
					found = a.Val
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	walk(n)
	return found
}
