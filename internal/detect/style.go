package detect

import (
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// inlineStyle parses a style attribute into lowercased property -> value
// pairs. Later declarations win; "!important" is dropped.
func inlineStyle(n *html.Node) map[string]string {
	raw, ok := lookupAttr(n, "style")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}

	decls := make(map[string]string)
	s := scanner.New(raw)

	var prop string
	var value []string
	inValue := false

	flush := func() {
		if prop != "" && len(value) > 0 {
			decls[prop] = strings.ToLower(strings.Join(value, " "))
		}
		prop, value, inValue = "", nil, false
	}

	for {
		tok := s.Next()
		if tok.Type == scanner.TokenEOF || tok.Type == scanner.TokenError {
			break
		}
		switch tok.Type {
		case scanner.TokenS, scanner.TokenComment:
			continue
		case scanner.TokenChar:
			switch tok.Value {
			case ";":
				flush()
				continue
			case ":":
				if !inValue && prop != "" {
					inValue = true
					continue
				}
			case "!":
				// Start of !important; the ident that follows is skipped below.
				continue
			}
		}
		if !inValue {
			if tok.Type == scanner.TokenIdent {
				prop = strings.ToLower(tok.Value)
			}
			continue
		}
		if tok.Type == scanner.TokenIdent && strings.EqualFold(tok.Value, "important") {
			continue
		}
		value = append(value, tok.Value)
	}
	flush()

	return decls
}

// isZeroLength reports whether a CSS length value is zero ("0", "0px", "0%").
func isZeroLength(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	end := 0
	for end < len(v) && (v[end] == '.' || v[end] == '-' || v[end] == '+' || (v[end] >= '0' && v[end] <= '9')) {
		end++
	}
	if end == 0 {
		return false
	}
	f, err := strconv.ParseFloat(v[:end], 64)
	return err == nil && f == 0
}

// visState is the visibility an element inherits from itself and its
// ancestors.
type visState struct {
	hidden     bool
	visibility string
}

// inheritedState folds the ancestor chain of n top-down. Results are stored
// in memo when it is non-nil, so sibling subtrees share their ancestors' work.
func inheritedState(n *html.Node, memo map[*html.Node]visState) visState {
	var chain []*html.Node
	var st visState
	for e := n; e != nil; e = e.Parent {
		if memo != nil {
			if cached, ok := memo[e]; ok {
				st = cached
				break
			}
		}
		chain = append(chain, e)
	}

	for i := len(chain) - 1; i >= 0; i-- {
		e := chain[i]
		if e.Type == html.ElementNode && !st.hidden {
			if hasAttr(e, "hidden") || e.DataAtom == atom.Template {
				st.hidden = true
			} else {
				style := inlineStyle(e)
				if style["display"] == "none" {
					st.hidden = true
				}
				// visibility inherits, so the nearest declaration wins.
				if v, ok := style["visibility"]; ok {
					st.visibility = v
				}
			}
		}
		if memo != nil {
			memo[e] = st
		}
	}
	return st
}

// IsVisible approximates whether an element renders with a non-empty box.
// Without a layout engine only markup is consulted: the hidden attribute,
// template ancestors, and inline display, visibility, width and height.
func IsVisible(n *html.Node) bool {
	return isVisible(n, nil)
}

func isVisible(n *html.Node, memo map[*html.Node]visState) bool {
	if n == nil {
		return false
	}

	own := inlineStyle(n)
	if isZeroLength(own["width"]) || isZeroLength(own["height"]) {
		return false
	}

	st := inheritedState(n, memo)
	return !st.hidden && st.visibility != "hidden" && st.visibility != "collapse"
}
