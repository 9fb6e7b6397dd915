package verify

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/campusmedia/capsync/pkg/capture"
)

// staleHeader lists the stale-data report columns in Row field order.
var staleHeader = []string{
	"section_id",
	"crm_id",
	"errors",
	"crm_room",
	"edo_room",
	"crm_schedule",
	"edo_schedule",
	"crm_instructors",
	"edo_instructors",
}

// missingHeader lists the missing-courses report columns.
var missingHeader = []string{
	"section_id",
	"term_id",
	"department",
	"catalog_id",
	"title",
	"instruction_format",
	"section_number",
	"start_time",
	"end_time",
	"days",
	"location",
}

// WriteStaleCSV renders the stale-data report to CSV: a header row, then
// one row per discrepancy with categories joined by "; ".
func WriteStaleCSV(w io.Writer, report []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(staleHeader); err != nil {
		return err
	}
	for _, row := range report {
		record := []string{
			row.SectionID,
			row.CRMID,
			strings.Join(row.Errors, "; "),
			row.CRMRoom,
			row.EDORoom,
			row.CRMSchedule,
			row.EDOSchedule,
			row.CRMInstructors,
			row.EDOInstructors,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteMissingCSV renders the missing-courses report to CSV, one section
// per row with its authoritative fields verbatim.
func WriteMissingCSV(w io.Writer, sections []capture.Section) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(missingHeader); err != nil {
		return err
	}
	for _, s := range sections {
		record := []string{
			s.SectionID,
			s.TermID,
			s.Department,
			s.CatalogID,
			s.Title,
			s.InstructionFormat,
			s.SectionNumber,
			s.StartTime,
			s.EndTime,
			s.Days,
			s.Location,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
