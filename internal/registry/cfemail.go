package registry

import (
	"encoding/hex"
	"strings"

	"golang.org/x/net/html"
)

// decodeCFEmail reverses Cloudflare's email obfuscation: the attribute is a
// hex string whose first byte is an XOR key for the rest.
func decodeCFEmail(encoded string) string {
	raw, err := hex.DecodeString(encoded)
	if err != nil || len(raw) < 2 {
		return ""
	}
	key := raw[0]
	out := make([]byte, len(raw)-1)
	for i, b := range raw[1:] {
		out[i] = b ^ key
	}
	email := string(out)
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

// findCFEmail locates the first data-cfemail attribute in the document and
// decodes it.
func findCFEmail(n *html.Node) string {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "data-cfemail" {
				return decodeCFEmail(a.Val)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if email := findCFEmail(c); email != "" {
			return email
		}
	}
	return ""
}
