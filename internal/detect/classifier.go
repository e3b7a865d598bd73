package detect

import (
	"golang.org/x/net/html"
)

// Context is the role a password field plays on its page.
type Context string

const (
	ContextConfirm     Context = "confirm"
	ContextNewPassword Context = "new-password"
	ContextSignup      Context = "signup"
	ContextUnknown     Context = "unknown"
)

const (
	autocompleteNewPassword     = "new-password"
	autocompleteCurrentPassword = "current-password"
)

// Classifier assigns a Context to a visible, non-login password input.
// page is the index of the document being scanned. keep is false when the
// input should be left out of the results.
type Classifier interface {
	Classify(page *Page, input *html.Node) (ctx Context, keep bool)
}

// HeuristicClassifier classifies inputs by keyword matching on attributes
// and surrounding form text.
type HeuristicClassifier struct {
	ConfirmKeywords []string
	SignupKeywords  []string
	LoginKeywords   []string
}

// DefaultClassifier returns the keyword heuristic used by DetectPasswordFields.
func DefaultClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{
		ConfirmKeywords: []string{"confirm", "repeat", "verify", "retype", "re-type", "re_type"},
		SignupKeywords:  []string{"signup", "sign-up", "sign_up", "register", "registration", "create", "new", "join"},
		LoginKeywords:   []string{"login", "sign in", "signin"},
	}
}

// Classify implements Classifier. Rules apply in order: confirm keywords,
// the new-password hint, signup keywords, and finally unknown, which is
// dropped inside forms that read like a login form.
func (c *HeuristicClassifier) Classify(page *Page, input *html.Node) (Context, bool) {
	name := lowerAttr(input, "name")
	id := lowerAttr(input, "id")
	placeholder := lowerAttr(input, "placeholder")

	if containsAny(name, c.ConfirmKeywords) || containsAny(id, c.ConfirmKeywords) || containsAny(placeholder, c.ConfirmKeywords) {
		return ContextConfirm, true
	}

	if lowerAttr(input, "autocomplete") == autocompleteNewPassword {
		return ContextNewPassword, true
	}

	form := page.OwnerForm(input)
	if form != nil && page.formVerdict(form, "signup", func() bool {
		for _, s := range []string{lowerAttr(form, "action"), lowerAttr(form, "id"), lowerAttr(form, "class"), page.FormText(form)} {
			if containsAny(s, c.SignupKeywords) {
				return true
			}
		}
		return false
	}) {
		return ContextSignup, true
	}

	if containsAny(name, c.SignupKeywords) || containsAny(id, c.SignupKeywords) {
		return ContextSignup, true
	}

	if form != nil && page.formVerdict(form, "login", func() bool {
		return containsAny(page.FormText(form), c.LoginKeywords)
	}) {
		return ContextUnknown, false
	}
	return ContextUnknown, true
}
