// Package sync orchestrates a reconciliation run: fetch the per-run
// snapshots from the academic source and the CRM, resolve contacts before
// courses, build minimal-diff upsert batches, and either write them back
// (Sync) or report divergence (Verify).
//
// A run is single-threaded and best-effort. The first fatal condition
// (malformed source data, a rejected upsert record) aborts the run with no
// partial commit of batches not yet sent. Two concurrent runs for the same
// term are not coordinated here and must be serialized by the caller's
// scheduler.
package sync

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campusmedia/capsync/pkg/batch"
	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/logging"
	"github.com/campusmedia/capsync/pkg/reconcile"
	"github.com/campusmedia/capsync/pkg/rooms"
	"github.com/campusmedia/capsync/pkg/verify"
)

// AcademicSource reads authoritative course data for a term. A failed or
// empty query surfaces as an empty result; the core does not distinguish.
type AcademicSource interface {
	// Sections returns the sections of a term, optionally filtered to a
	// subset of business keys.
	Sections(ctx context.Context, termID string, sectionIDs ...string) ([]capture.Section, error)

	// Instructors returns the instructors of the given sections keyed by
	// section business key.
	Instructors(ctx context.Context, termID string, sectionIDs []string) (map[string][]capture.Instructor, error)
}

// CRM reads and writes the capture CRM's course, contact, and location
// objects. Upsert results are positional: results[i] reports the outcome
// for batch[i].
type CRM interface {
	Courses(ctx context.Context) ([]capture.CourseRecord, error)
	Contacts(ctx context.Context) ([]capture.ContactRecord, error)
	Locations(ctx context.Context) ([]capture.Location, error)
	UpsertCourses(ctx context.Context, records []capture.CourseRecord) ([]capture.UpsertResult, error)
	UpsertContacts(ctx context.Context, records []capture.ContactRecord) ([]capture.UpsertResult, error)
}

// Syncer runs sync and verify operations against one academic source and
// one CRM.
type Syncer struct {
	academic AcademicSource
	crm      CRM
	dryRun   bool
}

// New creates a Syncer over the given collaborators.
func New(academic AcademicSource, crm CRM, opts ...Option) *Syncer {
	s := &Syncer{
		academic: academic,
		crm:      crm,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync reconciles one term into the CRM. With section IDs given, only that
// subset of the term is considered. Any rejected upsert record is fatal.
func (s *Syncer) Sync(ctx context.Context, termID string, sectionIDs ...string) (*Result, error) {
	started := time.Now()
	result := &Result{
		RunID:  uuid.NewString(),
		TermID: termID,
	}

	ctx = logging.WithRun(logging.WithTerm(ctx, termID), result.RunID)
	log := logging.Ctx(ctx)

	sections, err := s.fetchSections(ctx, termID, sectionIDs)
	if err != nil {
		return nil, err
	}
	result.SectionsFetched = len(sections)

	roomIndex, courseIndex, contactIndex, err := s.fetchCRMIndexes(ctx)
	if err != nil {
		return nil, err
	}

	matches := reconcile.Courses(sections, courseIndex, roomIndex)

	plan := reconcile.Contacts(matches, contactIndex)
	result.ContactsReused = len(plan.IDsByUID)

	// Contacts commit first: newly created contacts have no identifier
	// until the upsert response returns it.
	if len(plan.Create) > 0 {
		contactBatch := make([]capture.ContactRecord, 0, len(plan.Create))
		for _, inst := range plan.Create {
			contactBatch = append(contactBatch, batch.ContactRecord(inst))
		}
		result.ContactsCreated = len(plan.Create)

		if !s.dryRun {
			upserted, err := s.crm.UpsertContacts(ctx, contactBatch)
			if err != nil {
				return nil, err
			}
			if err := batch.CheckResults("Contact", upserted); err != nil {
				return nil, err
			}
			plan.MergeCreated(upserted)
		}
	}

	var courseBatch []capture.CourseRecord
	for _, match := range matches {
		if !match.RequiresUpdate {
			result.SectionsSkipped++
			continue
		}

		roomID, _ := roomIndex.ResolveID(match.Section.Location)
		record, err := batch.CourseRecord(match.Section, plan.InstructorIDs(match.Section), roomID, match.CRMID)
		if err != nil {
			return nil, err
		}
		courseBatch = append(courseBatch, record)

		if match.ExistsInCRM {
			result.CoursesUpdated++
		} else {
			result.CoursesInserted++
		}
	}

	if len(courseBatch) > 0 && !s.dryRun {
		upserted, err := s.crm.UpsertCourses(ctx, courseBatch)
		if err != nil {
			return nil, err
		}
		if err := batch.CheckResults("Course__c", upserted); err != nil {
			return nil, err
		}
	}

	result.DryRun = s.dryRun
	result.Duration = time.Since(started)
	log.Info().
		Int("sections", result.SectionsFetched).
		Int("courses_inserted", result.CoursesInserted).
		Int("courses_updated", result.CoursesUpdated).
		Int("contacts_created", result.ContactsCreated).
		Dur("duration", result.Duration).
		Msg("sync complete")

	return result, nil
}

// Verify compares the CRM against the authoritative records for one term
// and returns both report lists. Verify is read-only: it cannot produce an
// upsert failure.
func (s *Syncer) Verify(ctx context.Context, termID string) (*Report, error) {
	started := time.Now()
	runID := uuid.NewString()

	ctx = logging.WithRun(logging.WithTerm(ctx, termID), runID)
	log := logging.Ctx(ctx)

	sections, err := s.fetchSections(ctx, termID, nil)
	if err != nil {
		return nil, err
	}

	crmCourses, err := s.crm.Courses(ctx)
	if err != nil {
		return nil, err
	}
	crmContacts, err := s.crm.Contacts(ctx)
	if err != nil {
		return nil, err
	}
	crmLocations, err := s.crm.Locations(ctx)
	if err != nil {
		return nil, err
	}

	roomIndex := rooms.NewIndex(crmLocations, log)
	courseIndex := reconcile.IndexCourses(crmCourses)

	sectionsByKey := make(map[string]capture.Section, len(sections))
	for _, section := range sections {
		sectionsByKey[section.SectionID] = section
	}

	uidByContactID := make(map[string]string, len(crmContacts))
	for _, contact := range crmContacts {
		if contact.UID != "" {
			uidByContactID[contact.ID] = contact.UID
		}
	}

	locationsByID := make(map[string]capture.Location, len(crmLocations))
	for _, loc := range crmLocations {
		locationsByID[loc.ID] = loc
	}

	stale, err := verify.Stale(crmCourses, sectionsByKey, uidByContactID, locationsByID)
	if err != nil {
		return nil, err
	}
	missing := verify.Missing(sections, courseIndex, roomIndex)

	report := &Report{
		RunID:    runID,
		TermID:   termID,
		Stale:    stale,
		Missing:  missing,
		Duration: time.Since(started),
	}

	log.Info().
		Int("stale", len(stale)).
		Int("missing", len(missing)).
		Dur("duration", report.Duration).
		Msg("verify complete")

	return report, nil
}

// fetchSections reads the term's sections and attaches their instructors.
func (s *Syncer) fetchSections(ctx context.Context, termID string, sectionIDs []string) ([]capture.Section, error) {
	sections, err := s.academic.Sections(ctx, termID, sectionIDs...)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(sections))
	for _, section := range sections {
		keys = append(keys, section.SectionID)
	}

	bySection, err := s.academic.Instructors(ctx, termID, keys)
	if err != nil {
		return nil, err
	}

	for i := range sections {
		sections[i].Instructors = bySection[sections[i].SectionID]
	}

	return sections, nil
}

// fetchCRMIndexes reads the CRM snapshot needed by a sync run.
func (s *Syncer) fetchCRMIndexes(ctx context.Context) (*rooms.Index, map[string]capture.CourseRecord, map[string]string, error) {
	locations, err := s.crm.Locations(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	courses, err := s.crm.Courses(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	contacts, err := s.crm.Contacts(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	return rooms.NewIndex(locations, logging.Ctx(ctx)),
		reconcile.IndexCourses(courses),
		reconcile.IndexContacts(contacts),
		nil
}
