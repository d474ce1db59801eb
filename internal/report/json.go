package report

import (
	"encoding/json"
	"io"
)

// JSONReport is the top-level JSON output structure, grounded on the
// teacher's output.JSONReport.
type JSONReport struct {
	Libraries []JSONLibrary `json:"libraries"`
	Failures  []JSONFailure `json:"failures,omitempty"`
	Passes    []JSONPass    `json:"passes,omitempty"`
}

// JSONLibrary mirrors one LibraryReport entry.
type JSONLibrary struct {
	Name      string `json:"name"`
	Version   string `json:"version,omitempty"`
	DeclCount int    `json:"decl_count"`
	SizeBytes int    `json:"size_bytes"`
	Digest    string `json:"digest"`
}

// JSONFailure mirrors one phaseerr.Failure.
type JSONFailure struct {
	Source string `json:"source"`
	Msg    string `json:"msg"`
	Stack  string `json:"stack,omitempty"`
}

// JSONPass mirrors one transform.PassCount.
type JSONPass struct {
	Step  string `json:"step"`
	Count int    `json:"count"`
}

// BuildJSONReport converts a Summary into a JSONReport.
func BuildJSONReport(s *Summary) *JSONReport {
	out := &JSONReport{}
	for _, lr := range s.Libraries {
		out.Libraries = append(out.Libraries, JSONLibrary{
			Name:      lr.Name,
			Version:   lr.Version,
			DeclCount: lr.DeclCount,
			SizeBytes: lr.SizeBytes,
			Digest:    lr.Digest,
		})
	}
	for _, f := range s.Failures {
		out.Failures = append(out.Failures, JSONFailure{Source: f.Source, Msg: f.Msg, Stack: f.Stack})
	}
	for _, pc := range s.PassCounts {
		out.Passes = append(out.Passes, JSONPass{Step: pc.Step, Count: pc.Count})
	}
	return out
}

// RenderJSON writes report as pretty-printed JSON to w.
func RenderJSON(w io.Writer, report *JSONReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
