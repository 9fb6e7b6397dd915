// Package edo reads authoritative course data from the academic-records
// (EDO) database, with instructor attributes served from the SIS read
// replica when one is configured. Rows are scanned into typed records at
// this boundary; nothing downstream handles raw rows.
package edo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/errors"
	"github.com/campusmedia/capsync/pkg/logging"
)

// instructorChunkSize bounds how many section keys one instructor query
// carries. Chunks are independent; order between them does not matter.
const instructorChunkSize = 1000

const sectionsQuery = `
SELECT cs.section_id,
       cs.term_id,
       COALESCE(cs.dept_name, ''),
       COALESCE(cs.catalog_id, ''),
       COALESCE(cs.course_title, ''),
       COALESCE(cs.display_name, ''),
       COALESCE(cs.instruction_format, ''),
       COALESCE(cs.section_num, ''),
       COALESCE(cs.start_time, ''),
       COALESCE(cs.end_time, ''),
       COALESCE(cs.meeting_days, ''),
       COALESCE(cs.location, '')
FROM course_sections cs
WHERE cs.term_id = $1
  AND ($2::text[] IS NULL OR cs.section_id = ANY($2))
ORDER BY cs.section_id`

const instructorsQuery = `
SELECT si.section_id,
       p.ldap_uid,
       COALESCE(p.email_address, ''),
       COALESCE(p.first_name, ''),
       COALESCE(p.last_name, ''),
       COALESCE(p.dept_description, '')
FROM section_instructors si
JOIN person p ON p.ldap_uid = si.instructor_uid
WHERE si.term_id = $1
  AND si.section_id = ANY($2)
ORDER BY si.section_id, si.instructor_seq`

// Source reads sections and instructors. It satisfies sync.AcademicSource.
type Source struct {
	edo *pgxpool.Pool
	sis *pgxpool.Pool // nil when no replica is configured
}

// New connects to the EDO database and, when sisDSN is non-empty, the SIS
// read replica.
func New(ctx context.Context, edoDSN, sisDSN string) (*Source, error) {
	edoPool, err := pgxpool.New(ctx, edoDSN)
	if err != nil {
		return nil, errors.WrapQuery("edo", "connect", err)
	}

	s := &Source{edo: edoPool}
	if sisDSN != "" {
		sisPool, err := pgxpool.New(ctx, sisDSN)
		if err != nil {
			edoPool.Close()
			return nil, errors.WrapQuery("sis", "connect", err)
		}
		s.sis = sisPool
	}
	return s, nil
}

// Close releases both connection pools.
func (s *Source) Close() {
	s.edo.Close()
	if s.sis != nil {
		s.sis.Close()
	}
}

// Sections returns the sections of a term, optionally filtered to a subset
// of business keys.
func (s *Source) Sections(ctx context.Context, termID string, sectionIDs ...string) ([]capture.Section, error) {
	var filter []string
	if len(sectionIDs) > 0 {
		filter = sectionIDs
	}

	rows, err := s.edo.Query(ctx, sectionsQuery, termID, filter)
	if err != nil {
		return nil, errors.WrapQuery("edo", "sections", err)
	}
	defer rows.Close()

	var sections []capture.Section
	for rows.Next() {
		var sec capture.Section
		if err := rows.Scan(
			&sec.SectionID,
			&sec.TermID,
			&sec.Department,
			&sec.CatalogID,
			&sec.Title,
			&sec.DisplayName,
			&sec.InstructionFormat,
			&sec.SectionNumber,
			&sec.StartTime,
			&sec.EndTime,
			&sec.Days,
			&sec.Location,
		); err != nil {
			return nil, errors.WrapQuery("edo", "sections scan", err)
		}
		sections = append(sections, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.WrapQuery("edo", "sections", err)
	}

	logging.Ctx(ctx).Debug().Int("count", len(sections)).Msg("fetched sections")
	return sections, nil
}

// Instructors returns the instructors of the given sections keyed by
// section business key, querying in chunks of at most 1000 keys.
func (s *Source) Instructors(ctx context.Context, termID string, sectionIDs []string) (map[string][]capture.Instructor, error) {
	pool := s.edo
	source := "edo"
	if s.sis != nil {
		pool = s.sis
		source = "sis"
	}

	out := make(map[string][]capture.Instructor)
	for start := 0; start < len(sectionIDs); start += instructorChunkSize {
		end := start + instructorChunkSize
		if end > len(sectionIDs) {
			end = len(sectionIDs)
		}

		rows, err := pool.Query(ctx, instructorsQuery, termID, sectionIDs[start:end])
		if err != nil {
			return nil, errors.WrapQuery(source, "instructors", err)
		}

		for rows.Next() {
			var sectionID string
			var inst capture.Instructor
			if err := rows.Scan(
				&sectionID,
				&inst.UID,
				&inst.Email,
				&inst.FirstName,
				&inst.LastName,
				&inst.Department,
			); err != nil {
				rows.Close()
				return nil, errors.WrapQuery(source, "instructors scan", err)
			}
			out[sectionID] = append(out[sectionID], inst)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, errors.WrapQuery(source, "instructors", err)
		}
	}

	return out, nil
}
