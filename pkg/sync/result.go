package sync

import (
	"fmt"
	"time"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/verify"
)

// Result summarizes one sync run.
type Result struct {
	RunID  string
	TermID string

	SectionsFetched int // authoritative sections considered
	SectionsSkipped int // sections with nothing to write
	CoursesInserted int // course records written without a CRM identifier
	CoursesUpdated  int // course records written against an existing identifier
	ContactsCreated int // contacts with no prior CRM record
	ContactsReused  int // contacts matched to an existing record by UID

	DryRun   bool
	Duration time.Duration
}

// HasChanges returns true if the run wrote (or, for a dry run, planned) any
// records.
func (r *Result) HasChanges() bool {
	return r.CoursesInserted > 0 || r.CoursesUpdated > 0 || r.ContactsCreated > 0
}

// Summary returns a human-readable summary of the sync result.
func (r *Result) Summary() string {
	if !r.HasChanges() {
		return fmt.Sprintf("term %s: no changes", r.TermID)
	}
	s := fmt.Sprintf("term %s: %d courses inserted, %d updated, %d contacts created",
		r.TermID, r.CoursesInserted, r.CoursesUpdated, r.ContactsCreated)
	if r.DryRun {
		s += " (dry run)"
	}
	return s
}

// Report holds the two independent verification lists produced by one
// verify run.
type Report struct {
	RunID  string
	TermID string

	// Stale lists CRM course records diverging from the academic records.
	Stale []verify.Row

	// Missing lists capture-eligible sections absent from the CRM.
	Missing []capture.Section

	Duration time.Duration
}

// Clean returns true when verification found no divergence in either
// direction.
func (r *Report) Clean() bool {
	return len(r.Stale) == 0 && len(r.Missing) == 0
}

// Summary returns a human-readable summary of the verification report.
func (r *Report) Summary() string {
	if r.Clean() {
		return fmt.Sprintf("term %s: CRM is in sync", r.TermID)
	}
	return fmt.Sprintf("term %s: %d stale records, %d missing courses",
		r.TermID, len(r.Stale), len(r.Missing))
}
