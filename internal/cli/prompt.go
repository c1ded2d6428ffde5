// internal/cli/prompt.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInterrupted is returned when the session context is cancelled
	// while waiting for input.
	ErrInterrupted = errors.New("input interrupted")
	// ErrAborted is returned when the input stream ends.
	ErrAborted = errors.New("input aborted")
)

// Prompter reads non-blank answers from a line-oriented input.
type Prompter struct {
	out   io.Writer
	lines <-chan string
}

// NewPrompter starts reading lines from in. The reader goroutine exits at
// end of input or when ctx is done.
func NewPrompter(ctx context.Context, in io.Reader, out io.Writer) *Prompter {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &Prompter{out: out, lines: lines}
}

// Ask writes prompt and returns the first non-blank answer, trimmed.
// Blank answers are rejected and the prompt repeated.
func (p *Prompter) Ask(ctx context.Context, prompt string) (string, error) {
	for {
		fmt.Fprint(p.out, prompt)

		select {
		case <-ctx.Done():
			return "", ErrInterrupted
		case line, ok := <-p.lines:
			if !ok {
				return "", ErrAborted
			}
			if answer := strings.TrimSpace(line); answer != "" {
				return answer, nil
			}
			fmt.Fprintln(p.out, "Input required.")
		}
	}
}
