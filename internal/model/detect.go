package model

// DetectRequest carries the markup of a page to scan.
type DetectRequest struct {
	HTML string `json:"html"`
}

// FieldResponse describes one detected password field. Index and
// PairedIndex are document-order positions among all password inputs on
// the page, so a client can find the elements again.
type FieldResponse struct {
	Index        int    `json:"index"`
	Name         string `json:"name,omitempty"`
	ID           string `json:"id,omitempty"`
	Placeholder  string `json:"placeholder,omitempty"`
	Autocomplete string `json:"autocomplete,omitempty"`
	Context      string `json:"context"`
	FormID       string `json:"form_id,omitempty"`
	NewPassword  bool   `json:"new_password"`
	PairedIndex  *int   `json:"paired_index"`
}

// DetectResponse lists the fields found in one scan.
type DetectResponse struct {
	Fields []FieldResponse `json:"fields"`
}
