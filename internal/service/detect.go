package service

import (
	"strings"

	"github.com/passgen/passgen-go/internal/detect"
	"github.com/passgen/passgen-go/internal/model"
	"golang.org/x/net/html"
)

// DetectService scans submitted pages for password fields.
type DetectService struct {
	detector *detect.Detector
}

// NewDetectService creates a new DetectService.
func NewDetectService(d *detect.Detector) *DetectService {
	return &DetectService{detector: d}
}

// Detect parses the page, detects and pairs its password fields.
func (s *DetectService) Detect(req model.DetectRequest) (model.DetectResponse, error) {
	root, err := detect.Parse(strings.NewReader(req.HTML))
	if err != nil {
		return model.DetectResponse{}, err
	}

	fields := s.detector.Detect(root)
	detect.LinkPairedFields(fields)

	return DescribeFields(root, fields), nil
}

// DescribeFields describes fields by their position among all password
// inputs of the page.
func DescribeFields(root *html.Node, fields []detect.PasswordField) model.DetectResponse {
	index := make(map[*html.Node]int)
	for i, n := range detect.PasswordInputs(root) {
		index[n] = i
	}

	result := make([]model.FieldResponse, len(fields))
	for i, f := range fields {
		resp := model.FieldResponse{
			Index:        index[f.Element],
			Name:         detect.Attr(f.Element, "name"),
			ID:           detect.Attr(f.Element, "id"),
			Placeholder:  detect.Attr(f.Element, "placeholder"),
			Autocomplete: f.Autocomplete,
			Context:      string(f.Context),
			NewPassword:  detect.IsNewPasswordField(f),
		}
		if f.Form != nil {
			resp.FormID = detect.Attr(f.Form, "id")
		}
		if f.Paired != nil {
			if j, ok := index[f.Paired]; ok {
				resp.PairedIndex = &j
			}
		}
		result[i] = resp
	}

	return model.DetectResponse{Fields: result}
}
