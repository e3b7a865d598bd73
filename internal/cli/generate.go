package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/passgen/passgen-go/internal/model"
	"github.com/spf13/cobra"
)

var errInvalidCount = errors.New("count must be at least 1")

type generateFlags struct {
	length      int
	noUppercase bool
	noLowercase bool
	noNumbers   bool
	noSymbols   bool
	count       int
	copy        bool
	json        bool
}

func newGenerateCmd(app *App) *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate random passwords",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, app, f)
		},
	}

	cmd.Flags().IntVarP(&f.length, "length", "l", app.Config.DefaultLength, "password length")
	cmd.Flags().BoolVar(&f.noUppercase, "no-uppercase", false, "leave out uppercase letters")
	cmd.Flags().BoolVar(&f.noLowercase, "no-lowercase", false, "leave out lowercase letters")
	cmd.Flags().BoolVar(&f.noNumbers, "no-numbers", false, "leave out digits")
	cmd.Flags().BoolVar(&f.noSymbols, "no-symbols", false, "leave out symbols")
	cmd.Flags().IntVarP(&f.count, "count", "n", 1, "number of passwords")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "copy the result to the clipboard")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON")
	return cmd
}

func (f generateFlags) request() model.GenerateRequest {
	on := func(disabled bool) *bool {
		v := !disabled
		return &v
	}
	return model.GenerateRequest{
		Length:    f.length,
		Uppercase: on(f.noUppercase),
		Lowercase: on(f.noLowercase),
		Numbers:   on(f.noNumbers),
		Symbols:   on(f.noSymbols),
	}
}

func runGenerate(cmd *cobra.Command, app *App, f generateFlags) error {
	if f.count < 1 {
		return fmt.Errorf("%w, got %d", errInvalidCount, f.count)
	}

	results := make([]model.GenerateResponse, 0, f.count)
	for i := 0; i < f.count; i++ {
		resp, err := app.generator.Generate(f.request())
		if err != nil {
			return err
		}
		results = append(results, resp)
	}

	out := cmd.OutOrStdout()
	if f.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		var err error
		if len(results) == 1 {
			err = enc.Encode(results[0])
		} else {
			err = enc.Encode(results)
		}
		if err != nil {
			return err
		}
	} else {
		// Passwords go to stdout alone so they can be piped; ratings go to stderr.
		for _, r := range results {
			fmt.Fprintln(out, r.Password)
			fmt.Fprintln(cmd.ErrOrStderr(), renderStrength(r.Strength))
		}
	}

	if f.copy {
		passwords := make([]string, len(results))
		for i, r := range results {
			passwords[i] = r.Password
		}
		if err := app.Clipboard(strings.Join(passwords, "\n")); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), dimStyle.Render("copied to clipboard"))
	}
	return nil
}
