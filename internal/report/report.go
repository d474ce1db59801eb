// Package report summarizes a phase runtime run for human and machine
// consumption: one entry per successfully converted library plus the
// failures that stopped the rest, and optionally the per-pass declaration
// counts a traced transform.Pipeline run recorded. Grounded on the
// teacher's internal/output package (BuildJSONReport / RenderSummary /
// generateRadarChart), split here into terminal.go, json.go and chart.go
// along the same lines.
package report

import (
	"sort"

	"github.com/tsdecl/tsconv/internal/digest"
	"github.com/tsdecl/tsconv/internal/ident"
	"github.com/tsdecl/tsconv/internal/phase"
	"github.com/tsdecl/tsconv/internal/phaseerr"
	"github.com/tsdecl/tsconv/internal/transform"
	"github.com/tsdecl/tsconv/internal/tree"
)

// LibraryReport is one converted library's entry in a Summary.
type LibraryReport struct {
	Name      string
	Version   string
	DeclCount int
	SizeBytes int
	Digest    string
}

// Summary is the result of one runtime.RunAll call, shaped for the three
// renderers in this package.
type Summary struct {
	Libraries  []LibraryReport
	Failures   []phaseerr.Failure
	PassCounts []transform.PassCount
}

// Build assembles a Summary from a runtime run's outputs. passCounts is
// typically the PassCounts of a single transform.Pipeline run with
// TracePasses set -- spec.md's pipeline runs once per library, so charting
// every library's passes at once would just repeat the same step names;
// callers trace the one library the --report flag names.
func Build(libs map[ident.LibraryName]*phase.Library, failures []phaseerr.Failure, passCounts []transform.PassCount) *Summary {
	s := &Summary{Failures: failures, PassCounts: passCounts}
	for name, lib := range libs {
		if lib == nil {
			continue
		}
		names := declNames(lib.Parsed)
		s.Libraries = append(s.Libraries, LibraryReport{
			Name:      name.String(),
			Version:   lib.Version,
			DeclCount: len(names),
			SizeBytes: sizeOf(names),
			Digest:    digest.OfStrings(names),
		})
	}
	sort.Slice(s.Libraries, func(i, j int) bool { return s.Libraries[i].Name < s.Libraries[j].Name })
	return s
}

// declNames collects every declaration's CodePath string, recursing into
// containers and class/interface bodies via tree.Children -- the same
// traversal transform.countMembers uses for its pass trace, applied here
// to name rather than just count the declarations.
func declNames(pf *tree.ParsedFile) []string {
	if pf == nil {
		return nil
	}
	var names []string
	var walk func(tree.Tree)
	walk = func(t tree.Tree) {
		if n, ok := t.(tree.Named); ok {
			names = append(names, n.GetCodePath().String())
		}
		for _, c := range tree.Children(t) {
			walk(c)
		}
	}
	for _, m := range pf.Members {
		walk(m)
	}
	return names
}

func sizeOf(names []string) int {
	total := 0
	for _, n := range names {
		total += len(n)
	}
	return total
}

// TotalDecls sums DeclCount across every library in the summary.
func (s *Summary) TotalDecls() int {
	total := 0
	for _, lr := range s.Libraries {
		total += lr.DeclCount
	}
	return total
}
