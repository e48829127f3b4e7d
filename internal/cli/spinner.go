package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a progress line on stderr while a remote dataset
// downloads. Cancelling the parent context stops it like [Spinner.Stop].
type Spinner struct {
	w       io.Writer
	message string
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.Mutex // serializes writes to w
	once    sync.Once  // guards the goroutine start
	stopped chan struct{}
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:       os.Stderr,
		message: message,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start launches the animation. Calls after the first, or after Stop, do
// nothing.
func (s *Spinner) Start() {
	s.once.Do(func() { go s.run() })
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			s.write("\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// Stop ends the animation, waits for it to exit and clears the line. It
// may be called any number of times, started or not.
func (s *Spinner) Stop() {
	s.cancel()
	s.once.Do(func() { close(s.stopped) })
	<-s.stopped
	s.write("\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

func (s *Spinner) write(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, format, args...)
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess(s.w, "%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError(s.w, "%s", message)
}

// Cancelled reports whether the spinner was stopped or its parent context
// ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
