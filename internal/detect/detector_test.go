package detect

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func mustParse(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := Parse(strings.NewReader(markup))
	require.NoError(t, err)
	return root
}

func byName(t *testing.T, root *html.Node, name string) *html.Node {
	t.Helper()
	found := findAll(root, func(n *html.Node) bool {
		return n.Type == html.ElementNode && Attr(n, "name") == name
	})
	require.Len(t, found, 1, "element named %q", name)
	return found[0]
}

func names(fields []PasswordField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = Attr(f.Element, "name")
	}
	return out
}

func TestDetectCurrentPasswordOnly(t *testing.T) {
	root := mustParse(t, `<form><input type="password" name="pw" autocomplete="current-password"></form>`)
	assert.Empty(t, DetectPasswordFields(root))
}

func TestDetectIgnoresOtherInputTypes(t *testing.T) {
	root := mustParse(t, `<form><input type="text" name="user"><input name="pw"><input type="hidden" name="token"></form>`)
	assert.Empty(t, DetectPasswordFields(root))
}

func TestDetectClassification(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   Context
	}{
		{
			name:   "confirm keyword in name",
			markup: `<form><input type="password" name="confirm_password"></form>`,
			want:   ContextConfirm,
		},
		{
			name:   "confirm keyword in placeholder",
			markup: `<input type="password" name="x" placeholder="Re-type your password">`,
			want:   ContextConfirm,
		},
		{
			name:   "confirm keyword beats new-password hint",
			markup: `<form><input type="password" name="x" id="verify-pw" autocomplete="new-password"></form>`,
			want:   ContextConfirm,
		},
		{
			name:   "new-password hint",
			markup: `<form><input type="password" name="x" autocomplete="New-Password"></form>`,
			want:   ContextNewPassword,
		},
		{
			name:   "signup form action",
			markup: `<form action="/users/register"><input type="password" name="x"></form>`,
			want:   ContextSignup,
		},
		{
			name:   "signup form class",
			markup: `<form class="sign-up-form"><input type="password" name="x"></form>`,
			want:   ContextSignup,
		},
		{
			name:   "signup form text",
			markup: `<form><h2>Join us today</h2><input type="password" name="x"></form>`,
			want:   ContextSignup,
		},
		{
			name:   "signup field name outside a form",
			markup: `<div><input type="password" name="registration_pw"></div>`,
			want:   ContextSignup,
		},
		{
			name:   "unknown outside a form",
			markup: `<div><input type="password" name="pin"></div>`,
			want:   ContextUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := DetectPasswordFields(mustParse(t, tt.markup))
			require.Len(t, fields, 1)
			assert.Equal(t, tt.want, fields[0].Context)
		})
	}
}

func TestDetectSuppressesLoginForms(t *testing.T) {
	root := mustParse(t, `
		<form action="/session">
			<h2>Sign in to your account</h2>
			<input type="text" name="user">
			<input type="password" name="pw">
		</form>`)
	assert.Empty(t, DetectPasswordFields(root))
}

func TestDetectCurrentPasswordWinsOverConfirmKeyword(t *testing.T) {
	root := mustParse(t, `<form><input type="password" name="confirm_pw" autocomplete="current-password"></form>`)
	assert.Empty(t, DetectPasswordFields(root))
}

func TestDetectRecordsAutocomplete(t *testing.T) {
	root := mustParse(t, `
		<form>
			<input type="password" name="a" autocomplete="new-password">
			<input type="password" name="b">
		</form>`)

	fields := DetectPasswordFields(root)
	require.Len(t, fields, 2)
	assert.Equal(t, "new-password", fields[0].Autocomplete)
	assert.Equal(t, "", fields[1].Autocomplete)
	assert.Nil(t, fields[0].Paired, "detection does not pair")
}

func TestDetectSkipsInvisibleFields(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"display none", `<input type="password" name="x" style="display: none">`},
		{"display none important", `<input type="password" name="x" style="color:red; DISPLAY:none !important">`},
		{"visibility hidden", `<input type="password" name="x" style="visibility:hidden">`},
		{"hidden attribute", `<input type="password" name="x" hidden>`},
		{"zero width", `<input type="password" name="x" style="width:0px">`},
		{"zero height", `<input type="password" name="x" style="height: 0">`},
		{"hidden ancestor", `<div style="display:none"><span><input type="password" name="x"></span></div>`},
		{"inherited visibility", `<div style="visibility: collapse"><input type="password" name="x"></div>`},
		{"hidden attribute ancestor", `<section hidden><input type="password" name="x"></section>`},
		{"template content", `<template><input type="password" name="x"></template>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, DetectPasswordFields(mustParse(t, tt.markup)))
		})
	}
}

func TestDetectVisibilityOverride(t *testing.T) {
	root := mustParse(t, `<div style="visibility:hidden"><input type="password" name="x" style="visibility: visible"></div>`)
	assert.Len(t, DetectPasswordFields(root), 1)
}

func TestDetectStyleWithComment(t *testing.T) {
	root := mustParse(t, `<input type="password" name="x" style="/* display:none */ width: 200px">`)
	assert.Len(t, DetectPasswordFields(root), 1)
}

func TestDetectFormAttributeOwnership(t *testing.T) {
	root := mustParse(t, `
		<form id="signup-form" action="/submit"></form>
		<div>
			<input type="password" name="pw" form="signup-form">
		</div>`)

	fields := DetectPasswordFields(root)
	require.Len(t, fields, 1)
	assert.Equal(t, ContextSignup, fields[0].Context)
}

func TestDetectDocumentOrder(t *testing.T) {
	root := mustParse(t, `
		<form action="/register">
			<input type="password" name="first">
			<input type="password" name="second">
		</form>
		<input type="password" name="third">`)

	assert.Equal(t, []string{"first", "second", "third"}, names(DetectPasswordFields(root)))
}

func TestDetectMalformedMarkup(t *testing.T) {
	root := mustParse(t, `<form action="/join"><div><input type="password" name="pw"<p>unclosed`)
	assert.NotPanics(t, func() { DetectPasswordFields(root) })
}

func TestDetectReturnsFreshList(t *testing.T) {
	root := mustParse(t, `<form action="/join"><input type="password" name="pw"></form>`)

	first := DetectPasswordFields(root)
	first[0].Context = ContextUnknown

	second := DetectPasswordFields(root)
	require.Len(t, second, 1)
	assert.Equal(t, ContextSignup, second[0].Context)
}

type stubClassifier struct {
	calls int
}

func (s *stubClassifier) Classify(*Page, *html.Node) (Context, bool) {
	s.calls++
	return ContextNewPassword, s.calls%2 == 1
}

func TestDetectorUsesClassifier(t *testing.T) {
	root := mustParse(t, `
		<input type="password" name="a">
		<input type="password" name="b">
		<input type="password" name="c" autocomplete="current-password">
		<input type="password" name="d">`)

	stub := &stubClassifier{}
	fields := NewDetector(stub).Detect(root)

	assert.Equal(t, 3, stub.calls, "current-password inputs never reach the classifier")
	assert.Equal(t, []string{"a", "d"}, names(fields))
	for _, f := range fields {
		assert.Equal(t, ContextNewPassword, f.Context)
	}
}

func TestIsNewPasswordField(t *testing.T) {
	assert.True(t, IsNewPasswordField(PasswordField{Context: ContextNewPassword}))
	assert.True(t, IsNewPasswordField(PasswordField{Context: ContextSignup}))
	assert.False(t, IsNewPasswordField(PasswordField{Context: ContextConfirm}))
	assert.False(t, IsNewPasswordField(PasswordField{Context: ContextUnknown}))
}

func TestInlineStyle(t *testing.T) {
	root := mustParse(t, `<div style="Display : NONE; width:10px;;visibility:visible!important"></div>`)
	div := findAll(root, func(n *html.Node) bool { return n.Type == html.ElementNode && n.Data == "div" })
	require.Len(t, div, 1)

	got := inlineStyle(div[0])
	assert.Equal(t, "none", got["display"])
	assert.Equal(t, "10px", got["width"])
	assert.Equal(t, "visible", got["visibility"])
}

func TestIsZeroLength(t *testing.T) {
	for _, v := range []string{"0", "0px", "0.0em", "0%", "-0"} {
		assert.True(t, isZeroLength(v), v)
	}
	for _, v := range []string{"", "auto", "1px", "0.5em", "100%"} {
		assert.False(t, isZeroLength(v), v)
	}
}
