package report

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Display thresholds for terminal coloring, the converter's analogue of
// the teacher's scoreGreenMin/scoreYellowMin: a library with no failures
// and at least one declaration is green, a library that resolved but
// produced nothing is yellow, and a failure is red.
const (
	minHealthyDecls = 1
)

// RenderTerminal prints a human-readable summary of s to w: one line per
// converted library, then the failures (if any), then pass-count trace
// lines (if any). Color is automatically disabled when w is not a TTY, the
// same NO_COLOR-friendly behavior as the teacher's RenderSummary.
func RenderTerminal(w io.Writer, s *Summary, verbose bool) {
	useColor := false
	if f, ok := w.(*os.File); ok {
		useColor = os.Getenv("NO_COLOR") == "" && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
	color.NoColor = !useColor

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	bold.Fprintln(w, "tsconv report")
	fmt.Fprintln(w, "────────────────────────────────────────")
	fmt.Fprintf(w, "Libraries converted: %s\n", humanize.Comma(int64(len(s.Libraries))))
	fmt.Fprintf(w, "Declarations total:  %s\n", humanize.Comma(int64(s.TotalDecls())))

	for _, lr := range s.Libraries {
		c := green
		if lr.DeclCount < minHealthyDecls {
			c = yellow
		}
		version := lr.Version
		if version == "" {
			version = "-"
		}
		c.Fprintf(w, "  %-30s %8s decls  %8s  (%s)\n",
			lr.Name, humanize.Comma(int64(lr.DeclCount)), humanize.Bytes(uint64(lr.SizeBytes)), version)
		if verbose {
			fmt.Fprintf(w, "    digest: %s\n", lr.Digest)
		}
	}

	if len(s.Failures) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Failures")
		fmt.Fprintln(w, "────────────────────────────────────────")
		for _, f := range s.Failures {
			red.Fprintf(w, "  %s: %s\n", f.Source, f.Msg)
			if verbose && f.Stack != "" {
				fmt.Fprintf(w, "    %s\n", f.Stack)
			}
		}
	}

	if verbose && len(s.PassCounts) > 0 {
		fmt.Fprintln(w)
		bold.Fprintln(w, "Pipeline passes")
		fmt.Fprintln(w, "────────────────────────────────────────")
		for _, pc := range s.PassCounts {
			fmt.Fprintf(w, "  %-90s %s\n", pc.Step, humanize.Comma(int64(pc.Count)))
		}
	}
}
