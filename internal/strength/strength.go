// Package strength scores passwords for display.
//
// The crack-resistance estimate comes from an Estimator; this package only
// owns the mapping from the estimator's 0-4 score to a percentage and a label.
package strength

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxScore is the highest score an Estimator reports.
const MaxScore = 4

// MaxPasswordRunes is the longest password Score accepts. Matching cost
// grows quickly with length.
const MaxPasswordRunes = 256

var (
	ErrScoringUnavailable = errors.New("password strength scoring unavailable")
	ErrPasswordTooLong    = errors.New("password too long to score")
)

var ratingLabels = [...]string{
	"Very weak",
	"Weak",
	"Medium",
	"Strong",
	"Very strong",
}

// Strength is the display form of a password score.
type Strength struct {
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
	Rating     string  `json:"rating"`
	CrackTime  string  `json:"crack_time"`
}

// Estimate is what an Estimator reports for a password.
type Estimate struct {
	Score     int
	CrackTime string
}

// Estimator produces a crack-resistance estimate for a password.
type Estimator interface {
	Estimate(password string) (Estimate, error)
}

// Scorer turns estimates into Strength values.
type Scorer struct {
	estimator Estimator
}

// NewScorer creates a Scorer backed by the given estimator.
func NewScorer(e Estimator) *Scorer {
	return &Scorer{estimator: e}
}

// Score estimates password and maps the result.
func (s *Scorer) Score(password string) (Strength, error) {
	if n := utf8.RuneCountInString(password); n > MaxPasswordRunes {
		return Strength{}, fmt.Errorf("%w: %d characters, at most %d", ErrPasswordTooLong, n, MaxPasswordRunes)
	}

	est, err := s.estimator.Estimate(password)
	if err != nil {
		if errors.Is(err, ErrScoringUnavailable) {
			return Strength{}, err
		}
		return Strength{}, fmt.Errorf("%w: %v", ErrScoringUnavailable, err)
	}

	return Strength{
		Score:      est.Score,
		Percentage: Percentage(est.Score),
		Rating:     RatingFor(est.Score),
		CrackTime:  est.CrackTime,
	}, nil
}

// Percentage converts a score to its share of MaxScore.
func Percentage(score int) float64 {
	return float64(score) / MaxScore * 100
}

// RatingFor returns the label for score, or "Unknown" when it is out of range.
func RatingFor(score int) string {
	if score < 0 || score >= len(ratingLabels) {
		return "Unknown"
	}
	return ratingLabels[score]
}

var defaultScorer = NewScorer(NewZxcvbnEstimator())

// Calculate scores password with the zxcvbn estimator.
func Calculate(password string) (Strength, error) {
	return defaultScorer.Score(password)
}
