package detect

import (
	"golang.org/x/net/html"
)

var confirmPatterns = []string{
	"confirm",
	"repeat",
	"verify",
	"retype",
	"re-type",
	"re_type",
	"password2",
	"password_confirm",
	"passwordconfirm",
}

func matchesConfirmPattern(n *html.Node) bool {
	return containsAny(lowerAttr(n, "name"), confirmPatterns) ||
		containsAny(lowerAttr(n, "id"), confirmPatterns) ||
		containsAny(lowerAttr(n, "placeholder"), confirmPatterns)
}

// formCandidates summarizes the pairable inputs of one form. Every lookup
// excludes the asking field, so keeping the first two of each kind is
// enough to answer any of them.
type formCandidates struct {
	all []*html.Node
	// confirm holds inputs matching a confirm pattern.
	confirm []*html.Node
	// newPassword holds non-confirm inputs marked autocomplete=new-password.
	newPassword []*html.Node
	// plain holds any non-confirm input.
	plain []*html.Node
}

func (fc *formCandidates) add(n *html.Node) {
	fc.all = append(fc.all, n)
	if matchesConfirmPattern(n) {
		fc.confirm = appendFirstTwo(fc.confirm, n)
		return
	}
	if lowerAttr(n, "autocomplete") == autocompleteNewPassword {
		fc.newPassword = appendFirstTwo(fc.newPassword, n)
	}
	fc.plain = appendFirstTwo(fc.plain, n)
}

func appendFirstTwo(list []*html.Node, n *html.Node) []*html.Node {
	if len(list) < 2 {
		return append(list, n)
	}
	return list
}

func firstOther(list []*html.Node, self *html.Node) *html.Node {
	for _, n := range list {
		if n != self {
			return n
		}
	}
	return nil
}

// FindPairedField returns the input field should be filled together with,
// or nil when there is none or the choice would be a guess.
func FindPairedField(field PasswordField) *html.Node {
	page := field.page
	if page == nil {
		page = NewPage(documentRoot(field.Element))
	}
	return findPairedField(page, field)
}

func findPairedField(page *Page, field PasswordField) *html.Node {
	form := field.Form
	if form == nil {
		form = page.OwnerForm(field.Element)
	}
	if form == nil {
		return nil
	}

	fc := page.pairCandidates(form)
	if fc == nil || len(fc.all) < 2 {
		return nil
	}

	if field.Context == ContextConfirm {
		// An explicit new-password input wins over any other main field.
		if main := firstOther(fc.newPassword, field.Element); main != nil {
			return main
		}
		if main := firstOther(fc.plain, field.Element); main != nil {
			return main
		}
	} else if c := firstOther(fc.confirm, field.Element); c != nil {
		return c
	}

	return otherOfTwo(fc.all, field.Element)
}

// otherOfTwo returns the candidate that is not self when there are exactly
// two and self is one of them.
func otherOfTwo(candidates []*html.Node, self *html.Node) *html.Node {
	if len(candidates) != 2 {
		return nil
	}
	switch self {
	case candidates[0]:
		return candidates[1]
	case candidates[1]:
		return candidates[0]
	}
	return nil
}

// LinkPairedFields sets Paired on every field that does not have one yet.
func LinkPairedFields(fields []PasswordField) {
	pages := make(map[*html.Node]*Page)
	for i := range fields {
		if fields[i].Paired != nil {
			continue
		}
		page := fields[i].page
		if page == nil {
			root := documentRoot(fields[i].Element)
			if page = pages[root]; page == nil {
				page = NewPage(root)
				pages[root] = page
			}
		}
		fields[i].Paired = findPairedField(page, fields[i])
	}
}
