package detect

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse reads an HTML document. The parser repairs malformed markup, so an
// error here only comes from the reader.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func hasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}

// SetValue sets the value attribute of an input, the markup equivalent of
// assigning input.value.
func SetValue(n *html.Node, value string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && strings.EqualFold(n.Attr[i].Key, "value") {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "value", Val: value})
}

// lowerAttr returns the attribute value lowercased and trimmed.
func lowerAttr(n *html.Node, key string) string {
	return strings.ToLower(strings.TrimSpace(Attr(n, key)))
}

func isElement(n *html.Node, a atom.Atom) bool {
	return n != nil && n.Type == html.ElementNode && n.DataAtom == a
}

// IsPasswordInput reports whether n is an <input type="password">.
func IsPasswordInput(n *html.Node) bool {
	return isElement(n, atom.Input) && strings.EqualFold(strings.TrimSpace(Attr(n, "type")), "password")
}

// findAll returns every node under root (inclusive) matching match, in
// document order.
func findAll(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	if root != nil {
		walk(root)
	}
	return found
}

// documentRoot climbs to the top of the tree containing n.
func documentRoot(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

// PasswordInputs returns every password input in the document, in order.
func PasswordInputs(root *html.Node) []*html.Node {
	return findAll(root, IsPasswordInput)
}

// OwnerForm returns the form an input belongs to: the form named by its
// form attribute, otherwise the nearest form ancestor. An input whose form
// attribute names no form in the document has no owner.
//
// Each call with a form attribute searches the whole document; use
// Page.OwnerForm when resolving many inputs.
func OwnerForm(n *html.Node) *html.Node {
	return resolveOwner(n, func(id string) *html.Node {
		forms := findAll(documentRoot(n), func(c *html.Node) bool {
			return isElement(c, atom.Form) && Attr(c, "id") == id
		})
		if len(forms) == 0 {
			return nil
		}
		return forms[0]
	})
}

func resolveOwner(n *html.Node, formByID func(id string) *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	if id, ok := lookupAttr(n, "form"); ok {
		if id = strings.TrimSpace(id); id == "" {
			return nil
		}
		return formByID(id)
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if isElement(p, atom.Form) {
			return p
		}
	}
	return nil
}

// textContent concatenates all text under n, like the DOM property of the
// same name.
func textContent(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for k := c.FirstChild; k != nil; k = k.NextSibling {
			walk(k)
		}
	}
	walk(n)
	return b.String()
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
