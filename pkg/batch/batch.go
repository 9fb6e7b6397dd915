// Package batch turns resolved match results into upsert-ready CRM records.
// Records carry the existing CRM identifier when one was matched (update)
// and omit it otherwise (insert); field construction is deterministic so
// that repeated runs over unchanged sources produce byte-identical batches.
package batch

import (
	"fmt"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/errors"
	"github.com/campusmedia/capsync/pkg/normalize"
)

// CourseRecord builds the CRM course record for one section. instructorIDs
// fill the record's instructor slots in list order; more instructors than
// slots is an error rather than silent truncation. existingID is the CRM
// identifier of the matched record, or empty for an insert.
func CourseRecord(section capture.Section, instructorIDs []string, roomID, existingID string) (capture.CourseRecord, error) {
	if len(instructorIDs) > capture.MaxInstructorSlots {
		return capture.CourseRecord{}, errors.NewValidationError(
			"instructors",
			section.SectionID,
			fmt.Sprintf("section has %d instructors but the CRM course object has %d slots",
				len(instructorIDs), capture.MaxInstructorSlots),
		)
	}

	start, err := normalize.Time(section.StartTime)
	if err != nil {
		return capture.CourseRecord{}, err
	}
	end, err := normalize.Time(section.EndTime)
	if err != nil {
		return capture.CourseRecord{}, err
	}
	days, err := normalize.Weekdays(section.Days)
	if err != nil {
		return capture.CourseRecord{}, err
	}

	rec := capture.CourseRecord{
		ID:           existingID,
		SectionID:    section.SectionID,
		Title:        normalize.DisplayName(section),
		RoomID:       roomID,
		ScheduleDays: days,
		StartTime:    start,
		EndTime:      end,
	}
	if existingID == "" {
		rec.Stage = capture.StageScheduled
	}

	copy(rec.InstructorIDs[:], instructorIDs)

	return rec, nil
}

// ContactRecord builds the CRM contact record for one instructor. The role
// is fixed; the CRM identifier is never set here because contact identity
// is resolved by UID at upsert time.
func ContactRecord(inst capture.Instructor) capture.ContactRecord {
	return capture.ContactRecord{
		UID:        inst.UID,
		Email:      inst.Email,
		FirstName:  inst.FirstName,
		LastName:   inst.LastName,
		Department: inst.Department,
		Role:       capture.RoleInstructor,
	}
}

// CheckResults scans a bulk upsert response and returns an UpsertError for
// the first failed record. A single failure aborts the run; retries, if
// any, belong to the transport.
func CheckResults(object string, results []capture.UpsertResult) error {
	for _, res := range results {
		if !res.Success {
			return errors.NewUpsertError(object, res.Record, res.Message)
		}
	}
	return nil
}
