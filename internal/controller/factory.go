package controller

import (
	"io"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.InOrStdin(), cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
