package report

import (
	"testing"
)

func TestReportCounts(t *testing.T) {
	var r Report
	r.Created("a.java")
	r.Created("b.java")
	r.Skipped("c.java", "already exists")
	r.Warned("config.yml", "not found in project")

	if got := r.Count(StatusCreated); got != 2 {
		t.Errorf("Count(created) = %d, want 2", got)
	}
	if got := r.Count(StatusSkipped); got != 1 {
		t.Errorf("Count(skipped) = %d, want 1", got)
	}
	if !r.HasWarnings() {
		t.Error("expected HasWarnings to be true")
	}
}

func TestMergePreservesOrder(t *testing.T) {
	var a, b Report
	a.Created("first")
	b.Skipped("second", "exists")
	b.Created("third")

	a.Merge(&b)

	items := []string{"first", "second", "third"}
	if len(a.Outcomes) != len(items) {
		t.Fatalf("got %d outcomes, want %d", len(a.Outcomes), len(items))
	}
	for i, want := range items {
		if a.Outcomes[i].Item != want {
			t.Errorf("outcome %d = %q, want %q", i, a.Outcomes[i].Item, want)
		}
	}
}

func TestMergeNil(t *testing.T) {
	var r Report
	r.Merge(nil)
	if len(r.Outcomes) != 0 {
		t.Errorf("got %d outcomes, want 0", len(r.Outcomes))
	}
}
