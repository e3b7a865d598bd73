package crypto

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GeneratorOptions
		wantErr error
	}{
		{
			name:    "default options",
			opts:    DefaultOptions(),
			wantErr: nil,
		},
		{
			name: "all options enabled",
			opts: GeneratorOptions{
				Length: 32, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true,
			},
			wantErr: nil,
		},
		{
			name: "uppercase only",
			opts: GeneratorOptions{
				Length: 16, Uppercase: true,
			},
			wantErr: nil,
		},
		{
			name: "symbols only",
			opts: GeneratorOptions{
				Length: 16, Symbols: true,
			},
			wantErr: nil,
		},
		{
			name: "one character per enabled set",
			opts: GeneratorOptions{
				Length: 4, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true,
			},
			wantErr: nil,
		},
		{
			name: "single character",
			opts: GeneratorOptions{
				Length: 1, Numbers: true,
			},
			wantErr: nil,
		},
		{
			name: "maximum length",
			opts: GeneratorOptions{
				Length: MaxLength, Uppercase: true, Lowercase: true,
			},
			wantErr: nil,
		},
		{
			name: "zero length",
			opts: GeneratorOptions{
				Length: 0, Uppercase: true,
			},
			wantErr: ErrInvalidLength,
		},
		{
			name: "negative length",
			opts: GeneratorOptions{
				Length: -5, Uppercase: true,
			},
			wantErr: ErrInvalidLength,
		},
		{
			name: "length too long",
			opts: GeneratorOptions{
				Length: MaxLength + 1, Uppercase: true,
			},
			wantErr: ErrInvalidLength,
		},
		{
			name: "no character types selected",
			opts: GeneratorOptions{
				Length: 16,
			},
			wantErr: ErrEmptyCharset,
		},
		{
			name: "fewer positions than sets",
			opts: GeneratorOptions{
				Length: 2, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true,
			},
			wantErr: ErrInsufficientLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Generate(tt.opts)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Generate() error = %v, want %v", err, tt.wantErr)
				}
				if result != "" {
					t.Error("Generate() should return empty string on error")
				}
				return
			}

			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			if len(result) != tt.opts.Length {
				t.Errorf("Generate() length = %d, want %d", len(result), tt.opts.Length)
			}
		})
	}
}

func TestGenerateInsufficientLengthNamesTheNumbers(t *testing.T) {
	_, err := Generate(GeneratorOptions{Length: 2, Uppercase: true, Lowercase: true, Numbers: true, Symbols: true})
	if err == nil {
		t.Fatal("Generate() expected error")
	}
	if !strings.Contains(err.Error(), "length 2, 4 sets enabled") {
		t.Errorf("error %q does not describe the unmet constraint", err)
	}
}

func TestGenerateContainsRequiredTypes(t *testing.T) {
	opts := GeneratorOptions{
		Length:    16,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}

	for i := 0; i < 200; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}

		if !strings.ContainsAny(password, UppercaseChars) {
			t.Errorf("password %q missing uppercase character", password)
		}
		if !strings.ContainsAny(password, LowercaseChars) {
			t.Errorf("password %q missing lowercase character", password)
		}
		if !strings.ContainsAny(password, NumberChars) {
			t.Errorf("password %q missing number character", password)
		}
		if !strings.ContainsAny(password, SymbolChars) {
			t.Errorf("password %q missing symbol character", password)
		}
	}
}

func TestGenerateWithoutSymbols(t *testing.T) {
	opts := GeneratorOptions{Length: 16, Uppercase: true, Lowercase: true, Numbers: true}
	allowed := UppercaseChars + LowercaseChars + NumberChars

	for i := 0; i < 200; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if len(password) != 16 {
			t.Fatalf("Generate() length = %d, want 16", len(password))
		}
		for _, ch := range password {
			if !strings.ContainsRune(allowed, ch) {
				t.Fatalf("password %q contains unexpected character %q", password, ch)
			}
		}
		if !strings.ContainsAny(password, UppercaseChars) ||
			!strings.ContainsAny(password, LowercaseChars) ||
			!strings.ContainsAny(password, NumberChars) {
			t.Fatalf("password %q is missing an enabled set", password)
		}
	}
}

func TestGenerateSingleTypeContainsOnlyThatType(t *testing.T) {
	tests := []struct {
		name    string
		opts    GeneratorOptions
		charset string
	}{
		{
			name:    "uppercase only",
			opts:    GeneratorOptions{Length: 32, Uppercase: true},
			charset: UppercaseChars,
		},
		{
			name:    "lowercase only",
			opts:    GeneratorOptions{Length: 32, Lowercase: true},
			charset: LowercaseChars,
		},
		{
			name:    "numbers only",
			opts:    GeneratorOptions{Length: 32, Numbers: true},
			charset: NumberChars,
		},
		{
			name:    "symbols only",
			opts:    GeneratorOptions{Length: 32, Symbols: true},
			charset: SymbolChars,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			password, err := Generate(tt.opts)
			if err != nil {
				t.Fatalf("Generate() unexpected error: %v", err)
			}
			for _, ch := range password {
				if !strings.ContainsRune(tt.charset, ch) {
					t.Errorf("password contains unexpected character %q (not in %q)", string(ch), tt.charset)
				}
			}
		})
	}
}

func TestGenerateProducesUniquePasswords(t *testing.T) {
	opts := DefaultOptions()
	seen := make(map[string]bool)

	for i := 0; i < 1000; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		if seen[password] {
			t.Errorf("duplicate password generated: %q", password)
		}
		seen[password] = true
	}
}

func TestGenerateCharacterDistribution(t *testing.T) {
	const runs = 1000
	opts := GeneratorOptions{Length: 16, Lowercase: true}

	counts := make(map[rune]int)
	for i := 0; i < runs; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for _, ch := range password {
			counts[ch]++
		}
	}

	expected := float64(runs*opts.Length) / float64(len(LowercaseChars))
	var chi2 float64
	for _, ch := range LowercaseChars {
		d := float64(counts[ch]) - expected
		chi2 += d * d / expected
	}

	// 25 degrees of freedom; 90 is far beyond the p=1e-9 critical value.
	if chi2 > 90 {
		t.Errorf("character distribution looks non-uniform: chi2 = %.2f", chi2)
	}
}

func TestGenerateCategoryDistribution(t *testing.T) {
	const runs = 1000
	opts := DefaultOptions()
	sets := opts.Categories()

	pool := 0
	for _, s := range sets {
		pool += len(s)
	}

	counts := make([]int, len(sets))
	for i := 0; i < runs; i++ {
		password, err := Generate(opts)
		if err != nil {
			t.Fatalf("Generate() unexpected error: %v", err)
		}
		for _, ch := range password {
			for k, s := range sets {
				if strings.ContainsRune(s, ch) {
					counts[k]++
				}
			}
		}
	}

	// One guaranteed character per set, the rest drawn from the pool.
	filler := float64(opts.Length - len(sets))
	var chi2 float64
	for k, s := range sets {
		expected := runs * (1 + filler*float64(len(s))/float64(pool))
		d := float64(counts[k]) - expected
		chi2 += d * d / expected
	}

	if chi2 > 30 {
		t.Errorf("category distribution looks non-uniform: chi2 = %.2f, counts = %v", chi2, counts)
	}
}
