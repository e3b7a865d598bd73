// Package detect finds password-entry fields in an HTML document and links
// each one to its confirmation counterpart.
package detect

import (
	"golang.org/x/net/html"
)

// PasswordField is one detected password input. Records are produced fresh
// by every scan and are never updated by later scans.
type PasswordField struct {
	Element *html.Node
	// Autocomplete is the raw autocomplete attribute, "" when absent.
	Autocomplete string
	Context      Context
	// Form is the form that owns Element, nil when it has none.
	Form *html.Node
	// Paired is the matching confirm (or main) input, nil when unpaired.
	Paired *html.Node

	page *Page
}

// Detector scans documents for password fields.
type Detector struct {
	classifier Classifier
}

// NewDetector creates a Detector. A nil classifier means DefaultClassifier.
func NewDetector(c Classifier) *Detector {
	if c == nil {
		c = DefaultClassifier()
	}
	return &Detector{classifier: c}
}

// Detect returns the visible, non-login password fields under root in
// document order. Fields marked autocomplete="current-password" are
// excluded before classification runs.
func (d *Detector) Detect(root *html.Node) []PasswordField {
	page := NewPage(root)

	var fields []PasswordField
	for _, el := range page.PasswordInputs() {
		if !page.IsVisible(el) {
			continue
		}
		if lowerAttr(el, "autocomplete") == autocompleteCurrentPassword {
			continue
		}

		ctx, keep := d.classifier.Classify(page, el)
		if !keep {
			continue
		}

		fields = append(fields, PasswordField{
			Element:      el,
			Autocomplete: Attr(el, "autocomplete"),
			Context:      ctx,
			Form:         page.OwnerForm(el),
			page:         page,
		})
	}
	return fields
}

var defaultDetector = NewDetector(nil)

// DetectPasswordFields scans root with the default heuristic classifier.
func DetectPasswordFields(root *html.Node) []PasswordField {
	return defaultDetector.Detect(root)
}

// IsNewPasswordField reports whether a field is for setting a new password.
func IsNewPasswordField(f PasswordField) bool {
	return f.Context == ContextNewPassword || f.Context == ContextSignup
}
