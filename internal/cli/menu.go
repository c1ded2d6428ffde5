// internal/cli/menu.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
)

// ErrCritical is returned by Run when a menu action failed unexpectedly.
var ErrCritical = errors.New("critical error in menu loop")

const (
	choiceExit  = "6"
	bannerWidth = 30
)

// Menu is the interactive main loop.
type Menu struct {
	prompt  *Prompter
	out     io.Writer
	logger  *slog.Logger
	actions map[string]func(context.Context) error
}

func NewMenu(handler *Handler, prompt *Prompter, out io.Writer, logger *slog.Logger) *Menu {
	return &Menu{
		prompt:  prompt,
		out:     out,
		logger:  logger,
		actions: map[string]func(context.Context) error{
			"1": handler.AddBook,
			"2": handler.IssueBook,
			"3": handler.ReturnBook,
			"4": handler.ViewAll,
			"5": handler.Search,
		},
	}
}

// Run shows the menu until the user exits or input is interrupted. Both
// end the session cleanly and return nil.
func (m *Menu) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ErrorContext(ctx, "critical error", "panic", r, "stack", string(debug.Stack()))
			fmt.Fprintln(m.out, "\n\nA critical error occurred. Check logs.")
			err = fmt.Errorf("%w: %v", ErrCritical, r)
		}
	}()

	for {
		m.banner()
		choice, err := m.prompt.Ask(ctx, "Choice (1-6): ")
		if err != nil {
			return m.stop(ctx, err)
		}

		if choice == choiceExit {
			fmt.Fprintln(m.out, "\nExiting.")
			m.logger.InfoContext(ctx, "application closed")
			return nil
		}

		action, ok := m.actions[choice]
		if !ok {
			fmt.Fprintln(m.out, "Invalid choice.")
			continue
		}
		if err := action(ctx); err != nil {
			return m.stop(ctx, err)
		}
	}
}

func (m *Menu) banner() {
	rule := strings.Repeat("=", bannerWidth)
	fmt.Fprintln(m.out, "\n"+rule)
	fmt.Fprintln(m.out, " LIBRARY MANAGER")
	fmt.Fprintln(m.out, "1: Add Book | 2: Issue | 3: Return | 4: View All | 5: Search | 6: Exit")
	fmt.Fprintln(m.out, rule)
}

func (m *Menu) stop(ctx context.Context, err error) error {
	if errors.Is(err, ErrInterrupted) || errors.Is(err, ErrAborted) {
		fmt.Fprintln(m.out, "\n\nProgram interrupted.")
		m.logger.InfoContext(ctx, "application interrupted by user", "reason", err)
		return nil
	}
	m.logger.ErrorContext(ctx, "critical error", "error", err)
	fmt.Fprintln(m.out, "\n\nA critical error occurred. Check logs.")
	return fmt.Errorf("%w: %w", ErrCritical, err)
}
