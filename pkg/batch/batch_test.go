package batch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmedia/capsync/pkg/batch"
	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/errors"
)

func testSection() capture.Section {
	return capture.Section{
		SectionID:         "10001",
		TermID:            "2268",
		Department:        "COMPSCI",
		CatalogID:         "61A",
		InstructionFormat: "LEC",
		SectionNumber:     "001",
		StartTime:         "13:00",
		EndTime:           "14:29",
		Days:              "TUTH",
		Location:          "Barrows 106",
	}
}

func TestCourseRecordInsert(t *testing.T) {
	rec, err := batch.CourseRecord(testSection(), []string{"c1", "c2"}, "loc1", "")
	require.NoError(t, err)

	assert.Empty(t, rec.ID, "insert records carry no CRM identifier")
	assert.Equal(t, "10001", rec.SectionID)
	assert.Equal(t, "COMPSCI 61A, LEC 001", rec.Title)
	assert.Equal(t, "loc1", rec.RoomID)
	assert.Equal(t, "Tuesday, Thursday", rec.ScheduleDays)
	assert.Equal(t, "01:00pm", rec.StartTime)
	assert.Equal(t, "02:29pm", rec.EndTime)
	assert.Equal(t, capture.StageScheduled, rec.Stage)

	assert.Equal(t, [capture.MaxInstructorSlots]string{"c1", "c2"}, rec.InstructorIDs)
}

func TestCourseRecordUpdate(t *testing.T) {
	rec, err := batch.CourseRecord(testSection(), nil, "loc1", "crm42")
	require.NoError(t, err)

	assert.Equal(t, "crm42", rec.ID)
	assert.Empty(t, rec.Stage, "updates do not reset the lifecycle stage")
}

func TestCourseRecordTooManyInstructors(t *testing.T) {
	ids := []string{"c1", "c2", "c3", "c4", "c5", "c6", "c7"}
	_, err := batch.CourseRecord(testSection(), ids, "loc1", "")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
	assert.Contains(t, err.Error(), "10001")
}

func TestCourseRecordBadTime(t *testing.T) {
	section := testSection()
	section.StartTime = "25:00"
	_, err := batch.CourseRecord(section, nil, "loc1", "")
	require.Error(t, err)
	var timeErr *errors.InvalidTimeError
	assert.ErrorAs(t, err, &timeErr)
}

// Two identical builds must be byte-identical so repeated syncs against an
// unchanged source are pure no-op updates.
func TestCourseRecordDeterministic(t *testing.T) {
	first, err := batch.CourseRecord(testSection(), []string{"c1"}, "loc1", "crm42")
	require.NoError(t, err)
	second, err := batch.CourseRecord(testSection(), []string{"c1"}, "loc1", "crm42")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestContactRecord(t *testing.T) {
	rec := batch.ContactRecord(capture.Instructor{
		UID:        "u1",
		Email:      "u1@berkeley.edu",
		FirstName:  "Grace",
		LastName:   "Hopper",
		Department: "EECS",
	})

	assert.Empty(t, rec.ID)
	assert.Equal(t, "u1", rec.UID)
	assert.Equal(t, "Grace", rec.FirstName)
	assert.Equal(t, capture.RoleInstructor, rec.Role)
}

func TestCheckResults(t *testing.T) {
	ok := []capture.UpsertResult{{Success: true, ID: "a"}, {Success: true, ID: "b"}}
	assert.NoError(t, batch.CheckResults("Course__c", ok))

	failing := []capture.UpsertResult{
		{Success: true, ID: "a"},
		{Success: false, Message: "REQUIRED_FIELD_MISSING", Record: map[string]string{"Section_ID__c": "10001"}},
	}
	err := batch.CheckResults("Course__c", failing)
	require.Error(t, err)
	assert.True(t, errors.IsUpsertFailure(err))

	var upsertErr *errors.UpsertError
	require.ErrorAs(t, err, &upsertErr)
	assert.Equal(t, "Course__c", upsertErr.Object)
	assert.NotNil(t, upsertErr.Record)
}
