// Package ui provides colored console output.
//
// Messages go to stderr by default because stdout may carry generated
// configuration.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

// Out receives all ui messages.
var Out io.Writer = color.Error

// Success prints a green success message with checkmark.
func Success(format string, args ...any) {
	Green.Fprintf(Out, "✓ "+format+"\n", args...)
}

// Error prints a red error message with X.
func Error(format string, args ...any) {
	Red.Fprintf(Out, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func Warning(format string, args ...any) {
	Yellow.Fprintf(Out, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func Info(format string, args ...any) {
	Blue.Fprintf(Out, format+"\n", args...)
}

// Header prints a bold header.
func Header(format string, args ...any) {
	Bold.Fprintf(Out, format+"\n", args...)
}

// Item prints an indented list entry with an optional dimmed detail.
func Item(name, detail string) {
	if detail == "" {
		fmt.Fprintf(Out, "  %s\n", name)
		return
	}
	fmt.Fprintf(Out, "  %-20s ", name)
	Cyan.Fprintf(Out, "%s\n", detail)
}

// Fatal prints an error to stderr and exits.
func Fatal(format string, args ...any) {
	Red.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
	os.Exit(1)
}
