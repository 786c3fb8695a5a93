// Package report carries per-file outcome signals from the generator to
// whatever presents them to the user.
package report

import "sync"

// Status is the final state of one unit of work.
type Status int

const (
	// StatusApplied means the target was written.
	StatusApplied Status = iota
	// StatusSkipped means the target was deliberately left untouched.
	StatusSkipped
	// StatusFailed means the unit of work could not complete.
	StatusFailed
)

// String returns the label printed for the status.
func (s Status) String() string {
	switch s {
	case StatusApplied:
		return "OK"
	case StatusSkipped:
		return "WARNING"
	case StatusFailed:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Outcome describes what happened to one target.
type Outcome struct {
	Kind    string `json:"kind,omitempty"`
	Target  string `json:"target"`
	Status  Status `json:"-"`
	Message string `json:"message"`
	Backup  string `json:"backup,omitempty"`
	Err     error  `json:"-"`
	// Quiet marks skips that are no-ops rather than warnings.
	Quiet bool `json:"-"`
}

// Reporter receives outcomes as they happen.
type Reporter interface {
	Report(o Outcome)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(o Outcome)

// Report calls f(o).
func (f ReporterFunc) Report(o Outcome) { f(o) }

// Discard is a Reporter that drops every outcome.
var Discard Reporter = ReporterFunc(func(Outcome) {})

// Recorder collects outcomes in memory.
type Recorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

// Report appends o.
func (r *Recorder) Report(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

// Outcomes returns a copy of everything recorded so far.
func (r *Recorder) Outcomes() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// ByStatus returns the recorded outcomes with the given status.
func (r *Recorder) ByStatus(s Status) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes() {
		if o.Status == s {
			out = append(out, o)
		}
	}
	return out
}

// Find returns the last outcome recorded for target.
func (r *Recorder) Find(target string) (Outcome, bool) {
	all := r.Outcomes()
	for i := len(all) - 1; i >= 0; i-- {
		if all[i].Target == target {
			return all[i], true
		}
	}
	return Outcome{}, false
}

// Reset clears the recorded outcomes.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = nil
}

// Summary counts outcomes per status.
type Summary struct {
	Applied int `json:"applied"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Add counts o.
func (s *Summary) Add(o Outcome) {
	switch o.Status {
	case StatusApplied:
		s.Applied++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}
