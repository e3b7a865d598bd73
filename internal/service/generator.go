package service

import (
	"errors"
	"fmt"

	"github.com/passgen/passgen-go/internal/crypto"
	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/strength"
)

var ErrPasswordRequired = errors.New("password is required")

// GeneratorService handles password generation business logic.
type GeneratorService struct {
	scorer        *strength.Scorer
	defaultLength int
	minLength     int
}

// NewGeneratorService creates a new GeneratorService. Requests without a
// length get defaultLength; shorter than minLength is rejected.
func NewGeneratorService(scorer *strength.Scorer, defaultLength, minLength int) *GeneratorService {
	return &GeneratorService{
		scorer:        scorer,
		defaultLength: defaultLength,
		minLength:     minLength,
	}
}

// Generate produces a password based on the given request and scores it.
func (s *GeneratorService) Generate(req model.GenerateRequest) (model.GenerateResponse, error) {
	opts := crypto.GeneratorOptions{
		Length:    req.Length,
		Uppercase: boolOrDefault(req.Uppercase, true),
		Lowercase: boolOrDefault(req.Lowercase, true),
		Numbers:   boolOrDefault(req.Numbers, true),
		Symbols:   boolOrDefault(req.Symbols, true),
	}

	if opts.Length == 0 {
		opts.Length = s.defaultLength
	}
	if len(opts.Categories()) > 0 && (opts.Length < s.minLength || opts.Length > crypto.MaxLength) {
		return model.GenerateResponse{}, fmt.Errorf("%w: must be between %d and %d, got %d",
			crypto.ErrInvalidLength, s.minLength, crypto.MaxLength, opts.Length)
	}

	password, err := crypto.Generate(opts)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	st, err := s.scorer.Score(password)
	if err != nil {
		return model.GenerateResponse{}, err
	}

	return model.GenerateResponse{
		Password: password,
		Length:   len(password),
		Strength: st,
	}, nil
}

// Strength scores an existing password.
func (s *GeneratorService) Strength(req model.StrengthRequest) (strength.Strength, error) {
	if req.Password == "" {
		return strength.Strength{}, ErrPasswordRequired
	}
	return s.scorer.Score(req.Password)
}

// boolOrDefault returns the dereferenced pointer value, or the fallback if nil.
func boolOrDefault(p *bool, fallback bool) bool {
	if p == nil {
		return fallback
	}
	return *p
}
