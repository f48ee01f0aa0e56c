package pipeline

// PhaseTiming is one diagnostics record: a phase name and how long it took.
type PhaseTiming struct {
	Phase      string `json:"phase"`
	DurationMs int64  `json:"durationMs"`
}

// Diagnostics is the append-only per-run timing log. Entries are recorded
// in execution order and never reordered or deduplicated. It is not safe
// for concurrent use; the orchestrator appends only from its own goroutine
// after each step resolves.
type Diagnostics struct {
	entries []PhaseTiming
}

// Record appends one phase timing.
func (d *Diagnostics) Record(phase string, durationMs int64) {
	d.entries = append(d.entries, PhaseTiming{Phase: phase, DurationMs: durationMs})
}

// Entries returns a copy of the recorded timings in execution order.
func (d *Diagnostics) Entries() []PhaseTiming {
	out := make([]PhaseTiming, len(d.entries))
	copy(out, d.entries)
	return out
}
