package detect

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page indexes one parsed document for a scan. Form owners, form text,
// visibility and pairing candidates are each resolved at most once, so a
// scan stays linear in the size of the document.
//
// A Page describes the tree as it was when NewPage ran; build a new one
// after the document changes. A Page is not safe for concurrent use.
type Page struct {
	root   *html.Node
	inputs []*html.Node

	formsByID  map[string]*html.Node
	owner      map[*html.Node]*html.Node
	formText   map[*html.Node]string
	visibility map[*html.Node]visState
	candidates map[*html.Node]*formCandidates
	verdicts   map[formVerdictKey]bool
}

type formVerdictKey struct {
	form *html.Node
	kind string
}

// NewPage indexes the document rooted at root.
func NewPage(root *html.Node) *Page {
	p := &Page{
		root:       root,
		formsByID:  make(map[string]*html.Node),
		owner:      make(map[*html.Node]*html.Node),
		formText:   make(map[*html.Node]string),
		visibility: make(map[*html.Node]visState),
		verdicts:   make(map[formVerdictKey]bool),
	}

	findAll(root, func(n *html.Node) bool {
		if isElement(n, atom.Form) {
			// The first form with an id owns it, as getElementById would return.
			if id := Attr(n, "id"); id != "" {
				if _, dup := p.formsByID[id]; !dup {
					p.formsByID[id] = n
				}
			}
		}
		if IsPasswordInput(n) {
			p.inputs = append(p.inputs, n)
		}
		return false
	})

	for _, in := range p.inputs {
		p.owner[in] = resolveOwner(in, p.formByID)
	}
	return p
}

// Root returns the indexed document.
func (p *Page) Root() *html.Node { return p.root }

// PasswordInputs returns every password input of the page in document order.
func (p *Page) PasswordInputs() []*html.Node { return p.inputs }

func (p *Page) formByID(id string) *html.Node { return p.formsByID[id] }

// OwnerForm resolves the owner of n like the package-level OwnerForm,
// without searching the document again.
func (p *Page) OwnerForm(n *html.Node) *html.Node {
	if f, ok := p.owner[n]; ok {
		return f
	}
	f := resolveOwner(n, p.formByID)
	p.owner[n] = f
	return f
}

// FormText returns the lowercased text content of form.
func (p *Page) FormText(form *html.Node) string {
	if form == nil {
		return ""
	}
	if t, ok := p.formText[form]; ok {
		return t
	}
	t := strings.ToLower(textContent(form))
	p.formText[form] = t
	return t
}

// formVerdict runs decide once per form and kind for the life of the page.
func (p *Page) formVerdict(form *html.Node, kind string, decide func() bool) bool {
	key := formVerdictKey{form: form, kind: kind}
	if v, ok := p.verdicts[key]; ok {
		return v
	}
	v := decide()
	p.verdicts[key] = v
	return v
}

// IsVisible reports visibility like the package-level IsVisible, with
// ancestor styles cached across calls.
func (p *Page) IsVisible(n *html.Node) bool {
	return isVisible(n, p.visibility)
}

// pairCandidates returns the password inputs owned by form that may take
// part in pairing: current-password and invisible inputs are left out.
func (p *Page) pairCandidates(form *html.Node) *formCandidates {
	if p.candidates == nil {
		p.candidates = make(map[*html.Node]*formCandidates)
		for _, in := range p.inputs {
			owner := p.owner[in]
			if owner == nil ||
				lowerAttr(in, "autocomplete") == autocompleteCurrentPassword ||
				!p.IsVisible(in) {
				continue
			}
			fc := p.candidates[owner]
			if fc == nil {
				fc = &formCandidates{}
				p.candidates[owner] = fc
			}
			fc.add(in)
		}
	}
	return p.candidates[form]
}
