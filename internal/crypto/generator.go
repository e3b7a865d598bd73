package crypto

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?/"

	// MinLength is the shortest password the service and CLI will hand out.
	// Generate itself accepts anything from 1 to MaxLength.
	MinLength     = 8
	MaxLength     = 64
	DefaultLength = 16
)

var (
	ErrInvalidLength      = errors.New("password length must be a positive integer not exceeding 64")
	ErrEmptyCharset       = errors.New("at least one character set must be enabled")
	ErrInsufficientLength = errors.New("password length is too short to include every enabled character set")
)

// GeneratorOptions configures the password generator.
type GeneratorOptions struct {
	Length    int
	Uppercase bool
	Lowercase bool
	Numbers   bool
	Symbols   bool
}

// DefaultOptions returns sensible defaults: 16 characters with all types enabled.
func DefaultOptions() GeneratorOptions {
	return GeneratorOptions{
		Length:    DefaultLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

// Categories returns the alphabets of the enabled character sets, in
// uppercase, lowercase, numbers, symbols order.
func (o GeneratorOptions) Categories() []string {
	var sets []string
	if o.Uppercase {
		sets = append(sets, UppercaseChars)
	}
	if o.Lowercase {
		sets = append(sets, LowercaseChars)
	}
	if o.Numbers {
		sets = append(sets, NumberChars)
	}
	if o.Symbols {
		sets = append(sets, SymbolChars)
	}
	return sets
}

// Generate creates a cryptographically secure random password based on the given options.
// The result holds at least one character from every enabled set.
func Generate(opts GeneratorOptions) (string, error) {
	return generate(rand.Reader, opts)
}

func generate(src io.Reader, opts GeneratorOptions) (string, error) {
	if opts.Length < 1 || opts.Length > MaxLength {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, opts.Length)
	}

	requiredSets := opts.Categories()
	if len(requiredSets) == 0 {
		return "", ErrEmptyCharset
	}
	if opts.Length < len(requiredSets) {
		return "", fmt.Errorf("%w: length %d, %d sets enabled", ErrInsufficientLength, opts.Length, len(requiredSets))
	}

	var pool string
	for _, set := range requiredSets {
		pool += set
	}

	result := make([]byte, opts.Length)

	// Guarantee at least one character from each selected type.
	for i, charset := range requiredSets {
		ch, err := randChar(src, charset)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	// Fill the remaining positions from the full pool.
	for i := len(requiredSets); i < opts.Length; i++ {
		ch, err := randChar(src, pool)
		if err != nil {
			return "", err
		}
		result[i] = ch
	}

	if err := secureShuffle(src, result); err != nil {
		return "", err
	}

	return string(result), nil
}

// randChar picks a uniformly random character from charset.
func randChar(src io.Reader, charset string) (byte, error) {
	n, err := randIndex(src, len(charset))
	if err != nil {
		return 0, err
	}
	return charset[n], nil
}

// randIndex returns a uniform value in [0, n). rand.Int rejection-samples,
// so there is no modulo bias.
func randIndex(src io.Reader, n int) (int, error) {
	v, err := rand.Int(src, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("reading random source: %w", err)
	}
	return int(v.Int64()), nil
}

// secureShuffle performs a Fisher-Yates shuffle using src.
func secureShuffle(src io.Reader, data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := randIndex(src, i+1)
		if err != nil {
			return err
		}
		data[i], data[j] = data[j], data[i]
	}
	return nil
}
