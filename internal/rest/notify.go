package rest

import "github.com/pterm/pterm"

// Notifier surfaces transient user-facing notifications. The pipeline
// emits exactly one notification per failed call.
type Notifier interface {
	Error(msg string)
}

// TermNotifier prints notifications to the terminal.
type TermNotifier struct{}

func (TermNotifier) Error(msg string) {
	pterm.Error.Println(msg)
}
