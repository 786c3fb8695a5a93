package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/jturbide/vhost/internal/report"
)

// Console prints outcomes as [OK]/[WARNING]/[ERROR] lines.
type Console struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
}

// NewConsole creates a console reporter writing to w. Quiet no-op outcomes are
// only printed when verbose is set.
func NewConsole(w io.Writer, verbose bool) *Console {
	return &Console{w: w, verbose: verbose}
}

// Report prints one outcome line.
func (c *Console) Report(o report.Outcome) {
	if o.Quiet && !c.verbose {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	_, _ = statusColor(o.Status).Fprintf(c.w, "[%s]", o.Status)
	line := " "
	if o.Kind != "" {
		line += o.Kind + " "
	}
	line += o.Target
	if o.Message != "" {
		line += ": " + o.Message
	}
	if o.Backup != "" {
		line += " (backup: " + o.Backup + ")"
	}
	fmt.Fprintln(c.w, line)
}

// Summary prints the totals of a run.
func (c *Console) Summary(s report.Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "%d applied, %d skipped, %d failed\n", s.Applied, s.Skipped, s.Failed)
}

func statusColor(s report.Status) *color.Color {
	switch s {
	case report.StatusApplied:
		return successColor
	case report.StatusSkipped:
		return warnColor
	default:
		return errorColor
	}
}

// OutcomeJSON is the JSON form of an outcome.
type OutcomeJSON struct {
	Status  string `json:"status"`
	Kind    string `json:"kind,omitempty"`
	Target  string `json:"target"`
	Message string `json:"message,omitempty"`
	Backup  string `json:"backup,omitempty"`
}

// RunJSON is the JSON document printed by `sync --json`.
type RunJSON struct {
	Outcomes []OutcomeJSON  `json:"outcomes"`
	Summary  report.Summary `json:"summary"`
}

// NewRunJSON converts recorded outcomes for JSON output.
func NewRunJSON(outcomes []report.Outcome, s report.Summary) RunJSON {
	out := RunJSON{Outcomes: make([]OutcomeJSON, 0, len(outcomes)), Summary: s}
	for _, o := range outcomes {
		out.Outcomes = append(out.Outcomes, OutcomeJSON{
			Status:  o.Status.String(),
			Kind:    o.Kind,
			Target:  o.Target,
			Message: o.Message,
			Backup:  o.Backup,
		})
	}
	return out
}
