// Package session owns the detection state for one document: the current
// field snapshot, the single open overlay, and debounced rescans.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/passgen/passgen-go/internal/detect"
	"golang.org/x/net/html"
)

// DefaultDebounce coalesces bursts of document changes into one rescan.
const DefaultDebounce = 100 * time.Millisecond

var (
	ErrNoSuchField = errors.New("no such password field")
	ErrNoOverlay   = errors.New("no overlay is open")
	ErrNoSource    = errors.New("session has no document source")
)

// Source loads the current state of a document.
type Source interface {
	Load() (*html.Node, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (*html.Node, error)

func (f SourceFunc) Load() (*html.Node, error) { return f() }

// FileSource reads and parses the HTML file at path on every Load.
func FileSource(path string) Source {
	return SourceFunc(func() (*html.Node, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return detect.Parse(f)
	})
}

// Overlay is the generation prompt attached to one field. At most one is
// open per session.
type Overlay struct {
	Index int
	Field detect.PasswordField
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce sets the rescan debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithSource sets where Rescan loads the document from.
func WithSource(src Source) Option {
	return func(s *Session) { s.source = src }
}

// WithOnScan registers a callback that receives every new snapshot along
// with the document it was taken from.
func WithOnScan(fn func(root *html.Node, fields []detect.PasswordField)) Option {
	return func(s *Session) { s.onScan = fn }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// Session is the explicit lifecycle object for one document.
type Session struct {
	detector *detect.Detector
	debounce time.Duration
	source   Source
	onScan   func(*html.Node, []detect.PasswordField)
	logger   *slog.Logger

	// deliverMu is held while a snapshot is stored and handed to onScan,
	// so Close can wait out a delivery already in progress.
	deliverMu sync.Mutex

	mu      sync.Mutex
	root    *html.Node
	fields  []detect.PasswordField
	overlay *Overlay
	timer   *time.Timer
	closed  bool
}

// New creates a Session. A nil detector uses the default heuristics.
func New(d *detect.Detector, opts ...Option) *Session {
	if d == nil {
		d = detect.NewDetector(nil)
	}
	s := &Session{
		detector: d,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan detects and pairs the fields of root, replacing the previous
// snapshot wholesale. Any open overlay belongs to the old snapshot and is
// closed. After Close the fields are still returned but neither stored nor
// passed to the OnScan callback.
func (s *Session) Scan(root *html.Node) []detect.PasswordField {
	fields := s.detector.Detect(root)
	detect.LinkPairedFields(fields)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fields
	}
	s.root = root
	s.fields = fields
	s.overlay = nil
	onScan := s.onScan
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Debug("document scanned", "fields", len(fields))
	if onScan != nil {
		onScan(root, snapshot)
	}
	return snapshot
}

// Rescan loads the document from the session's source and scans it.
func (s *Session) Rescan() error {
	if s.source == nil {
		return ErrNoSource
	}
	root, err := s.source.Load()
	if err != nil {
		return fmt.Errorf("loading document: %w", err)
	}
	s.Scan(root)
	return nil
}

// Trigger schedules a Rescan after the debounce delay. Calls arriving
// before the delay elapses restart it, so a burst yields one rescan.
func (s *Session) Trigger() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		if err := s.Rescan(); err != nil {
			s.logger.Warn("rescan failed", "error", err)
		}
	})
}

// Fields returns a copy of the current snapshot.
func (s *Session) Fields() []detect.PasswordField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() []detect.PasswordField {
	out := make([]detect.PasswordField, len(s.fields))
	copy(out, s.fields)
	return out
}

// Open closes any open overlay and opens one for field i.
func (s *Session) Open(i int) (*Overlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.overlay = nil
	if i < 0 || i >= len(s.fields) {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchField, i)
	}
	s.overlay = &Overlay{Index: i, Field: s.fields[i]}
	return s.overlay, nil
}

// Active returns the open overlay, or nil.
func (s *Session) Active() *Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.overlay
}

// Fill writes password into the overlay's field and its paired field, then
// closes the overlay.
func (s *Session) Fill(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.overlay == nil {
		return ErrNoOverlay
	}
	detect.SetValue(s.overlay.Field.Element, password)
	if s.overlay.Field.Paired != nil {
		detect.SetValue(s.overlay.Field.Paired, password)
	}
	s.overlay = nil
	return nil
}

// CloseOverlay closes the open overlay, if any.
func (s *Session) CloseOverlay() {
	s.mu.Lock()
	s.overlay = nil
	s.mu.Unlock()
}

// Close closes the overlay and cancels any pending rescan. A rescan that is
// already loading is discarded, and once Close returns no OnScan callback
// runs. Later Trigger calls are ignored. Close must not be called from the
// OnScan callback.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.overlay = nil
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	// Wait for a delivery that passed the closed check before we set it.
	s.deliverMu.Lock()
	s.deliverMu.Unlock()
}

// Render writes the current document, including filled values.
func (s *Session) Render(w io.Writer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.root == nil {
		return errors.New("no document scanned")
	}
	return html.Render(w, s.root)
}
