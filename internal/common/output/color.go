// Package output provides colored terminal output helpers.
package output

import (
	"os"

	"github.com/fatih/color"
)

var (
	// Error colors failure reasons in report output.
	Error = color.New(color.FgRed)

	// Package colors package names in report output.
	Package = color.New(color.FgBlue, color.Bold)
)

// NoColor disables color output
func NoColor() {
	color.NoColor = true
}

// ForceColor enables color output even when not a TTY
func ForceColor() {
	color.NoColor = false
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	Error.Fprintf(os.Stderr, "✗ "+format+"\n", args...)
}

// Sprintf returns a colored string without printing
func Sprintf(c *color.Color, format string, args ...interface{}) string {
	return c.Sprintf(format, args...)
}

// FormatPackage formats a package name with color
func FormatPackage(pkg string) string {
	return Package.Sprint(pkg)
}
