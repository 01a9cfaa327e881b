// Package report collects per-item outcomes of a generation run.
//
// Every stage of a run (template rendering, config patching, YAML patching)
// records what happened to each file it touched. Nothing here aborts the
// run; fatal conditions are ordinary error returns upstream.
package report

// Status classifies the outcome of a single item
type Status string

const (
	// StatusCreated means a new file or entry was written
	StatusCreated Status = "created"
	// StatusSkipped means the item already existed and was left untouched
	StatusSkipped Status = "skipped"
	// StatusWarned means the item could not be processed but the run continued
	StatusWarned Status = "warned"
	// StatusFailed means an unexpected error occurred for this item
	StatusFailed Status = "failed"
)

// Outcome records what happened to a single file or config entry
type Outcome struct {
	Status Status
	// Item is the project-relative path or config key the outcome refers to
	Item string
	// Reason gives the human-readable cause for skips, warnings and failures
	Reason string
}

// Report is the ordered collection of outcomes for one generation run
type Report struct {
	Outcomes []Outcome
}

// Add appends an outcome to the report
func (r *Report) Add(status Status, item, reason string) {
	r.Outcomes = append(r.Outcomes, Outcome{Status: status, Item: item, Reason: reason})
}

// Created appends a created outcome
func (r *Report) Created(item string) {
	r.Add(StatusCreated, item, "")
}

// Skipped appends a skipped outcome with the given reason
func (r *Report) Skipped(item, reason string) {
	r.Add(StatusSkipped, item, reason)
}

// Warned appends a warned outcome with the given reason
func (r *Report) Warned(item, reason string) {
	r.Add(StatusWarned, item, reason)
}

// Merge appends all outcomes from another report, preserving order
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

// Count returns the number of outcomes with the given status
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// HasWarnings reports whether any outcome is warned or failed
func (r *Report) HasWarnings() bool {
	return r.Count(StatusWarned) > 0 || r.Count(StatusFailed) > 0
}
