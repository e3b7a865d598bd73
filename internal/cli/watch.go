package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/passgen/passgen-go/internal/detect"
	"github.com/passgen/passgen-go/internal/service"
	"github.com/passgen/passgen-go/internal/session"
	"github.com/passgen/passgen-go/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/net/html"
)

func newWatchCmd(app *App) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Rescan a page whenever it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app, args[0], debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", app.Config.RescanDebounce, "wait this long after a change before rescanning")
	return cmd
}

func runWatch(cmd *cobra.Command, app *App, path string, debounce time.Duration) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// Scans run on the debounce timer's goroutine.
	var mu sync.Mutex
	report := func(root *html.Node, fields []detect.PasswordField) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out, dimStyle.Render(time.Now().Format(time.TimeOnly)+" "+path))
		if err := printFields(out, service.DescribeFields(root, fields)); err != nil {
			app.Logger.Warn("printing fields failed", "error", err)
		}
	}

	s := session.New(app.detector,
		session.WithSource(session.FileSource(path)),
		session.WithDebounce(debounce),
		session.WithOnScan(report),
		session.WithLogger(app.Logger),
	)
	defer s.Close()

	if err := s.Rescan(); err != nil {
		return err
	}

	w, err := watch.New(path, s.Trigger, app.Logger)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Stop()

	<-w.Done()
	return nil
}
