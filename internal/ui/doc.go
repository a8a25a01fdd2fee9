// Package ui contains user-facing presentation helpers for the CLI.
//
// It renders shell command lifecycle events through zap for console output
// and provides the confirmation prompter used before destructive operations.
package ui
