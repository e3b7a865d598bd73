package cli

import (
	"fmt"
	"os"

	"github.com/passgen/passgen-go/internal/model"
	"github.com/passgen/passgen-go/internal/session"
	"github.com/spf13/cobra"
)

type fillFlags struct {
	field  int
	length int
	output string
	copy   bool
}

func newFillCmd(app *App) *cobra.Command {
	var f fillFlags

	cmd := &cobra.Command{
		Use:   "fill <file>",
		Short: "Generate a password and fill it into a page",
		Long: `Generate a password and write it into one password field of an HTML
page, and into that field's confirmation partner when it has one. The
filled page is written to stdout or to --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFill(cmd, app, args[0], f)
		},
	}

	cmd.Flags().IntVar(&f.field, "field", 0, "field number as listed by scan")
	cmd.Flags().IntVarP(&f.length, "length", "l", app.Config.DefaultLength, "password length")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write the page here instead of stdout")
	cmd.Flags().BoolVarP(&f.copy, "copy", "c", false, "copy the password to the clipboard")
	return cmd
}

func runFill(cmd *cobra.Command, app *App, path string, f fillFlags) error {
	s := session.New(app.detector,
		session.WithSource(session.FileSource(path)),
		session.WithLogger(app.Logger),
	)
	defer s.Close()

	if err := s.Rescan(); err != nil {
		return err
	}

	overlay, err := s.Open(f.field)
	if err != nil {
		return err
	}

	resp, err := app.generator.Generate(model.GenerateRequest{Length: f.length})
	if err != nil {
		s.CloseOverlay()
		return err
	}

	if err := s.Fill(resp.Password); err != nil {
		return err
	}

	filled := 1
	if overlay.Field.Paired != nil {
		filled++
	}
	app.Logger.Debug("filled password fields", "field", overlay.Index, "count", filled)

	if err := writeDocument(cmd, s, f.output); err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintf(stderr, "filled %d field(s) with %s\n", filled, passwordStyle.Render(resp.Password))
	fmt.Fprintln(stderr, renderStrength(resp.Strength))

	if f.copy {
		if err := app.Clipboard(resp.Password); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
	}
	return nil
}

func writeDocument(cmd *cobra.Command, s *session.Session, output string) error {
	if output == "" {
		return s.Render(cmd.OutOrStdout())
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := s.Render(out); err != nil {
		out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return out.Close()
}
