package handlers

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/imamik/acadeploy/internal/provisioning"
)

// Factory function variables for confirmations - can be replaced in tests.
var (
	// isInteractive reports whether stdin is a terminal.
	isInteractive = func() bool {
		fd := os.Stdin.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	// askConfirm shows a yes/no prompt.
	askConfirm = func(prompt string) (bool, error) {
		var ok bool
		err := huh.NewConfirm().
			Title(prompt).
			Affirmative("Yes").
			Negative("No").
			Value(&ok).
			Run()
		return ok, err
	}
)

// confirmer answers every prompt with yes when assumeYes is set, asks on a
// terminal, and answers no otherwise.
type confirmer struct {
	assumeYes bool
}

var _ provisioning.Confirmer = (*confirmer)(nil)

func newConfirmer(assumeYes bool) *confirmer {
	return &confirmer{assumeYes: assumeYes}
}

func (c *confirmer) Confirm(prompt string) (bool, error) {
	if c.assumeYes {
		return true, nil
	}
	if !isInteractive() {
		return false, nil
	}
	return askConfirm(prompt)
}
