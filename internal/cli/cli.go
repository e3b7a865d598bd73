// Package cli implements passgen's command-line subcommands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/passgen/passgen-go/internal/config"
	"github.com/passgen/passgen-go/internal/detect"
	"github.com/passgen/passgen-go/internal/service"
	"github.com/passgen/passgen-go/internal/strength"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// App holds what the commands share. Tests swap the clipboard and
// password prompt.
type App struct {
	Config       config.Config
	Logger       *slog.Logger
	Clipboard    func(text string) error
	ReadPassword func(prompt string, w io.Writer) (string, error)

	generator *service.GeneratorService
	detector  *detect.Detector
}

// NewApp wires the services for cfg.
func NewApp(cfg config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	scorer := strength.NewScorer(strength.NewZxcvbnEstimator())
	return &App{
		Config:       cfg,
		Logger:       logger,
		Clipboard:    clipboard.WriteAll,
		ReadPassword: ReadPassword,
		generator:    service.NewGeneratorService(scorer, cfg.DefaultLength, cfg.MinLength),
		detector:     detect.NewDetector(nil),
	}
}

// NewRootCmd builds the passgen command tree.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "passgen",
		Short:         "Generate passwords and fill password forms",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newGenerateCmd(app),
		newStrengthCmd(app),
		newScanCmd(app),
		newFillCmd(app),
		newWatchCmd(app),
	)
	return root
}

// ReadPassword prompts on w and reads a password from the terminal without echo.
func ReadPassword(prompt string, w io.Writer) (string, error) {
	fmt.Fprint(w, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// readLine returns the first line of r without its line ending.
func readLine(r io.Reader) (string, error) {
	sc := bufio.NewScanner(r)
	if sc.Scan() {
		return strings.TrimRight(sc.Text(), "\r"), nil
	}
	if err := sc.Err(); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return "", nil
}

// openInput opens path for reading; "-" is stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return f, nil
}
