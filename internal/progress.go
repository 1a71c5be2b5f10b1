package internal

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// spinnerInterval is how often an indeterminate spinner advances
const spinnerInterval = 100 * time.Millisecond

// UIManager handles all user interface concerns (spinners, verbose output, status messages)
type UIManager interface {
	NewSpinner(description string) ProgressBar

	Verbose(format string, args ...any)

	Printf(format string, args ...any)
	Println(args ...any)
}

// ProgressBar abstracts progress indicator operations
type ProgressBar interface {
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	verbose bool
	quiet   bool
}

func NewUIManager(verbose, quiet bool) UIManager {
	return &StandardUIManager{
		verbose: verbose,
		quiet:   quiet,
	}
}

// NewSpinner starts an indeterminate spinner on stderr. Quiet mode, verbose
// mode and non-terminal stderr get a silent one.
func (ui *StandardUIManager) NewSpinner(description string) ProgressBar {
	fd := os.Stderr.Fd()
	if ui.quiet || ui.verbose || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return SilentProgressBar{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)

	s := &VisibleSpinner{bar: bar, done: make(chan struct{})}
	go s.spin()
	return s
}

func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Printf(format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Println(args...)
	}
}

// VisibleSpinner animates a progress bar until finished
type VisibleSpinner struct {
	bar  *progressbar.ProgressBar
	done chan struct{}
	once sync.Once
}

func (s *VisibleSpinner) spin() {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			_ = s.bar.Add(1)
		}
	}
}

func (s *VisibleSpinner) Describe(description string) {
	s.bar.Describe(description)
}

func (s *VisibleSpinner) Finish() {
	s.once.Do(func() {
		close(s.done)
		_ = s.bar.Finish()
	})
}

// SilentProgressBar implements a progress bar that renders nothing
type SilentProgressBar struct{}

func (SilentProgressBar) Describe(string) {}

func (SilentProgressBar) Finish() {}
