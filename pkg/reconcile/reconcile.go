// Package reconcile matches course sections and instructors across the
// academic-records database and the capture CRM. The two systems share no
// primary keys: sections join on the business key (section identifier) and
// people join on the instructor UID. Everything else in a CRM record is
// treated as replaceable state owned by the authoritative source.
//
// Reconciliation runs over immutable per-run snapshots and produces plans;
// it performs no I/O itself.
package reconcile

import (
	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/rooms"
)

// IndexCourses builds the business-key index over a CRM course snapshot.
// When the CRM holds duplicate records for one business key the first in
// input order wins; later duplicates are unreachable for matching and will
// surface in verification as stale.
func IndexCourses(records []capture.CourseRecord) map[string]capture.CourseRecord {
	idx := make(map[string]capture.CourseRecord, len(records))
	for _, rec := range records {
		if _, ok := idx[rec.SectionID]; ok {
			continue
		}
		idx[rec.SectionID] = rec
	}
	return idx
}

// IndexContacts builds the UID to CRM-identifier index over a CRM contact
// snapshot. Contacts without a UID cannot be matched and are skipped.
func IndexContacts(records []capture.ContactRecord) map[string]string {
	idx := make(map[string]string, len(records))
	for _, rec := range records {
		if rec.UID == "" {
			continue
		}
		if _, ok := idx[rec.UID]; ok {
			continue
		}
		idx[rec.UID] = rec.ID
	}
	return idx
}

// Courses classifies every authoritative section against the CRM course
// index. A section already present in the CRM always requires an update so
// that drift propagates, even with zero current instructors. A brand-new
// section requires one only when it has at least one instructor and its
// room is capture-eligible.
func Courses(sections []capture.Section, courseIndex map[string]capture.CourseRecord, roomIndex *rooms.Index) []capture.MatchResult {
	results := make([]capture.MatchResult, 0, len(sections))
	for _, section := range sections {
		result := capture.MatchResult{Section: section}

		if existing, ok := courseIndex[section.SectionID]; ok {
			result.ExistsInCRM = true
			result.CRMID = existing.ID
		}

		result.RequiresUpdate = result.ExistsInCRM ||
			(len(section.Instructors) > 0 && roomIndex.Eligible(section.Location))

		results = append(results, result)
	}
	return results
}
