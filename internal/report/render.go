package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/carlwgeorge/toleo/internal/common/output"
	"github.com/carlwgeorge/toleo/internal/version"
)

// divider frames each package's block in the report.
var divider = strings.Repeat("-", 50)

// Render writes the report for the given outcomes. Each package block
// is framed by a divider line; versions are shown with the packaging
// release suffix stripped.
func Render(w io.Writer, mode Mode, outcomes []Outcome) {
	fmt.Fprintln(w, divider)
	for _, o := range outcomes {
		fmt.Fprintf(w, "package:\t%s\n", output.FormatPackage(o.Package))
		if mode == ModeUpstream || mode == ModeCompare {
			fmt.Fprintf(w, "upstream:\t%s\n", formatResult(o.Upstream))
		}
		if mode == ModeRepo || mode == ModeCompare {
			fmt.Fprintf(w, "repo:\t\t%s\n", formatResult(o.Repo))
		}
		fmt.Fprintln(w, divider)
	}
}

// formatResult renders one side of a package for display.
func formatResult(r Result) string {
	switch r.Status {
	case StatusOK:
		return version.StripRelease(r.Version)
	case StatusNotFound:
		return "unknown"
	case StatusNotConfigured:
		return "not configured"
	case StatusFailed:
		return output.Sprintf(output.Error, "error: %s", r.Reason)
	default:
		return "unknown"
	}
}
