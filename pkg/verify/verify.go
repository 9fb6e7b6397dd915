// Package verify compares the CRM's course records against the
// authoritative academic records and reports divergence: stale CRM records
// whose room, schedule, or instructor set has drifted, and capture-eligible
// sections missing from the CRM entirely. Verification is read-only; it
// returns report rows and never writes to any system.
package verify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/normalize"
	"github.com/campusmedia/capsync/pkg/rooms"
)

// Mismatch categories reported in Row.Errors.
const (
	CategoryRooms       = "Rooms"
	CategorySchedule    = "Schedule"
	CategoryInstructors = "Instructor UIDs"
	CategoryNoMatch     = "NO MATCH IN EDO DB"
)

// Row is one stale-data report entry: a CRM course record that diverges
// from the authoritative section sharing its business key. Both sides'
// values are carried verbatim for audit.
type Row struct {
	SectionID      string
	CRMID          string
	Errors         []string
	CRMRoom        string
	EDORoom        string
	CRMSchedule    string
	EDOSchedule    string
	CRMInstructors string
	EDOInstructors string
}

// Stale compares every CRM course record against the authoritative section
// carrying its business key. A row is emitted only when at least one
// dimension mismatches; several categories may apply at once. CRM records
// whose business key is unknown to the academic records are reported with
// the NO MATCH category and no comparison fields.
//
// uidByContactID maps CRM contact identifiers back to instructor UIDs, and
// locationsByID resolves the CRM course's room reference to its building
// and room number.
func Stale(
	crmCourses []capture.CourseRecord,
	sectionsByKey map[string]capture.Section,
	uidByContactID map[string]string,
	locationsByID map[string]capture.Location,
) ([]Row, error) {
	var report []Row

	for _, course := range crmCourses {
		section, ok := sectionsByKey[course.SectionID]
		if !ok {
			report = append(report, Row{
				SectionID: course.SectionID,
				CRMID:     course.ID,
				Errors:    []string{CategoryNoMatch},
			})
			continue
		}

		row := Row{
			SectionID: course.SectionID,
			CRMID:     course.ID,
		}

		crmRoom := roomText(course, locationsByID)
		row.CRMRoom = crmRoom
		row.EDORoom = section.Location
		if normalize.Location(crmRoom) != normalize.Location(section.Location) {
			row.Errors = append(row.Errors, CategoryRooms)
		}

		edoSchedule, err := scheduleDescriptor(section)
		if err != nil {
			return nil, err
		}
		crmSchedule := fmt.Sprintf("%s to %s, on %s", course.StartTime, course.EndTime, course.ScheduleDays)
		row.CRMSchedule = crmSchedule
		row.EDOSchedule = edoSchedule
		if crmSchedule != edoSchedule {
			row.Errors = append(row.Errors, CategorySchedule)
		}

		crmUIDs := courseInstructorUIDs(course, uidByContactID)
		edoUIDs := sectionInstructorUIDs(section)
		row.CRMInstructors = strings.Join(crmUIDs, ";")
		row.EDOInstructors = strings.Join(edoUIDs, ";")
		if !equalStrings(crmUIDs, edoUIDs) {
			row.Errors = append(row.Errors, CategoryInstructors)
		}

		if len(row.Errors) > 0 {
			report = append(report, row)
		}
	}

	return report, nil
}

// Missing returns every capture-eligible authoritative section whose
// business key has no CRM course record. Ineligible sections never appear
// regardless of CRM absence.
func Missing(sections []capture.Section, courseIndex map[string]capture.CourseRecord, roomIndex *rooms.Index) []capture.Section {
	var missing []capture.Section
	for _, section := range sections {
		if !roomIndex.Eligible(section.Location) {
			continue
		}
		if _, ok := courseIndex[section.SectionID]; ok {
			continue
		}
		missing = append(missing, section)
	}
	return missing
}

// scheduleDescriptor builds the composite "{start} to {end}, on {days}"
// string from a section's raw time and day fields.
func scheduleDescriptor(section capture.Section) (string, error) {
	start, err := normalize.Time(section.StartTime)
	if err != nil {
		return "", err
	}
	end, err := normalize.Time(section.EndTime)
	if err != nil {
		return "", err
	}
	days, err := normalize.Weekdays(section.Days)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s to %s, on %s", start, end, days), nil
}

// roomText reconstructs the displayable "building room" string for a CRM
// course's room reference. An unresolvable reference yields the raw
// identifier so the report still shows something actionable.
func roomText(course capture.CourseRecord, locationsByID map[string]capture.Location) string {
	if loc, ok := locationsByID[course.RoomID]; ok {
		return loc.Building + " " + loc.RoomNumber
	}
	return course.RoomID
}

// courseInstructorUIDs maps a CRM course's populated instructor slots back
// to UIDs, sorted. Slots referencing unknown contacts keep the raw
// identifier so a dangling reference shows up as a mismatch.
func courseInstructorUIDs(course capture.CourseRecord, uidByContactID map[string]string) []string {
	var uids []string
	for _, id := range course.InstructorIDs {
		if id == "" {
			continue
		}
		if uid, ok := uidByContactID[id]; ok {
			uids = append(uids, uid)
			continue
		}
		uids = append(uids, id)
	}
	sort.Strings(uids)
	return uids
}

// sectionInstructorUIDs returns a section's instructor UIDs, sorted.
func sectionInstructorUIDs(section capture.Section) []string {
	uids := make([]string, 0, len(section.Instructors))
	for _, inst := range section.Instructors {
		uids = append(uids, inst.UID)
	}
	sort.Strings(uids)
	return uids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
