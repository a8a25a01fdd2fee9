// Package execshell provides structured helpers for invoking external tools.
//
// It wraps os/exec behind ShellExecutor, exposes OSCommandRunner for default
// process execution, and defines the command abstractions forgebridge uses to
// run git and the GitHub CLI in a testable manner.
package execshell
