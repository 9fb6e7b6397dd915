// Package capture defines the domain types shared by the course-capture
// reconciliation core: authoritative course sections and instructors from the
// academic-records (EDO) database, and the course, contact, and location
// records held by the capture CRM.
//
// All values are per-run snapshots. Nothing in this package is mutated in
// place; every transformation downstream produces a new record.
package capture

// Section is an authoritative course section as read from the EDO database.
// SectionID is the business key: the only natural join key between the
// academic records and the CRM.
type Section struct {
	SectionID         string
	TermID            string
	Department        string
	CatalogID         string
	Title             string
	DisplayName       string
	InstructionFormat string
	SectionNumber     string
	StartTime         string // 24-hour "HH:MM", raw from source
	EndTime           string // 24-hour "HH:MM", raw from source
	Days              string // concatenated two-letter weekday codes, raw
	Location          string // free text, e.g. "Barrows 106"

	// Instructors assigned to this section, in source order. May be empty.
	Instructors []Instructor
}

// Instructor is a person teaching one or more sections. UID is the stable
// cross-system identity anchor; CRM contact identifiers are opaque and must
// never be assumed stable across runs.
type Instructor struct {
	UID        string
	Email      string
	FirstName  string
	LastName   string
	Department string
}

// Location is a physical room known to the CRM, with its recording
// capability flag.
type Location struct {
	ID             string
	Building       string
	RoomNumber     string
	CaptureCapable bool
}

// MaxInstructorSlots is the number of instructor lookup fields on the CRM
// course object.
const MaxInstructorSlots = 6

// CourseRecord is a course as represented in the CRM. An empty ID means the
// record has not been created yet (insert); a populated ID targets an
// existing record (update).
type CourseRecord struct {
	ID            string
	SectionID     string
	Title         string
	InstructorIDs [MaxInstructorSlots]string
	RoomID        string
	ScheduleDays  string // comma-joined full day names
	StartTime     string // 12-hour "hh:mmam" text
	EndTime       string // 12-hour "hh:mmpm" text
	Stage         string
}

// ContactRecord is an instructor as represented in the CRM.
type ContactRecord struct {
	ID         string
	UID        string
	Email      string
	FirstName  string
	LastName   string
	Department string
	Role       string
}

// StageScheduled is the lifecycle stage assigned to newly created CRM
// course records.
const StageScheduled = "Scheduled"

// RoleInstructor is the fixed role assigned to CRM contact records built
// from instructors.
const RoleInstructor = "Instructor"

// MatchResult records, for one authoritative section, whether a CRM course
// record already exists and whether the section should be written this run.
type MatchResult struct {
	Section Section

	// ExistsInCRM is true when a CRM course record carries this section's
	// business key. CRMID holds its identifier in that case.
	ExistsInCRM bool
	CRMID       string

	// RequiresUpdate is true when the section should appear in the upsert
	// batch: any section already in the CRM, or a new section that has at
	// least one instructor and a capture-eligible room.
	RequiresUpdate bool
}

// UpsertResult reports the outcome for a single record in a CRM bulk
// upsert. On failure Record carries the original payload.
type UpsertResult struct {
	Success bool
	ID      string // CRM identifier of the created or updated record
	Message string // error detail when Success is false
	Record  any    // original payload, populated on failure
}
