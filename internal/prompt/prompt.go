// Package prompt asks the user for confirmations and file names.
package prompt

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

//go:generate mockgen -source=prompt.go -destination=prompt_mock.go -package=prompt

// Prompter asks the user questions.
type Prompter interface {
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, title string) (bool, error)
	// Input asks for a line of text, offering def as the answer.
	Input(ctx context.Context, title, def string) (string, error)
}

// Huh prompts on the terminal with charmbracelet/huh forms.
type Huh struct {
	// Accessible renders plain prompts, for screen readers and dumb terminals.
	Accessible bool
}

var _ Prompter = Huh{}

// Confirm asks a yes/no question. Aborting the prompt answers no.
func (h Huh) Confirm(ctx context.Context, title string) (bool, error) {
	var ok bool
	field := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok)
	if err := h.run(ctx, field); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// Input asks for a line of text.
func (h Huh) Input(ctx context.Context, title, def string) (string, error) {
	value := def
	field := huh.NewInput().
		Title(title).
		Placeholder(def).
		Value(&value)
	if err := h.run(ctx, field); err != nil {
		return "", err
	}
	if value == "" {
		value = def
	}
	return value, nil
}

func (h Huh) run(ctx context.Context, field huh.Field) error {
	form := huh.NewForm(huh.NewGroup(field)).
		WithShowHelp(false).
		WithAccessible(h.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

// Fixed answers every question without asking: Confirm returns Answer and
// Input returns its default.
type Fixed struct {
	Answer bool
}

var _ Prompter = Fixed{}

// Confirm returns f.Answer.
func (f Fixed) Confirm(context.Context, string) (bool, error) { return f.Answer, nil }

// Input returns def.
func (f Fixed) Input(_ context.Context, _, def string) (string, error) { return def, nil }
