package update

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gha-cli/gha-cli/pkg/version"
)

// render prints the per-file report. Every scanned usage is listed under
// its file header; entries with a pending update get a "==> target"
// suffix, red for major bumps and cyan otherwise.
func (c *Controller) render(results []*FileResult) {
	nameWidth, currentWidth := 0, 0
	for _, res := range results {
		for _, e := range res.Entries {
			if n := len(entryName(e)); n > nameWidth {
				nameWidth = n
			}
			if n := len(entryCurrent(e)); n > currentWidth {
				currentWidth = n
			}
		}
	}

	header := color.New(color.FgHiBlue)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)
	for _, res := range results {
		header.Fprintf(c.stdout, "%s:\n", res.Path)
		for _, e := range res.Entries {
			fmt.Fprintf(c.stdout, "  %-*s %*s", nameWidth+2, entryName(e), currentWidth, entryCurrent(e))
			if e.Decision.Target != nil {
				cl := cyan
				if isMajorChange(e.Decision) {
					cl = red
				}
				fmt.Fprintf(c.stdout, " ==> %s", cl.Sprint(e.Decision.Rendered))
			}
			fmt.Fprintln(c.stdout)
		}
	}
}

func entryName(e *Entry) string {
	if e.Usage.Err != nil || e.Usage.Reference == nil {
		return e.Usage.Raw
	}
	return e.Usage.Reference.Identity.String()
}

func entryCurrent(e *Entry) string {
	if e.Usage.Reference == nil || e.Usage.Reference.Ref.Raw == "" {
		return "-"
	}
	return e.Usage.Reference.Ref.Raw
}

func isMajorChange(d version.Decision) bool {
	if d.Reason == version.MajorBump {
		return true
	}
	if d.Target == nil {
		return false
	}
	return firstSegment(d.Current.Version()) != firstSegment(d.Target.Version())
}

func firstSegment(v string) string {
	s, _, _ := strings.Cut(v, ".")
	return s
}
