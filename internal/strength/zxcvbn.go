package strength

import (
	"fmt"

	"github.com/nbutton23/zxcvbn-go"
)

// ZxcvbnEstimator estimates strength with the zxcvbn dictionary and pattern matcher.
type ZxcvbnEstimator struct {
	userInputs []string
}

// NewZxcvbnEstimator creates an estimator. userInputs are extra words (site
// name, user name) that should count as guessable.
func NewZxcvbnEstimator(userInputs ...string) *ZxcvbnEstimator {
	return &ZxcvbnEstimator{userInputs: userInputs}
}

// Estimate implements Estimator. A panic inside the matcher is reported as
// ErrScoringUnavailable.
func (z *ZxcvbnEstimator) Estimate(password string) (est Estimate, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrScoringUnavailable, r)
		}
	}()

	result := zxcvbn.PasswordStrength(password, z.userInputs)
	return Estimate{
		Score:     result.Score,
		CrackTime: result.CrackTimeDisplay,
	}, nil
}
