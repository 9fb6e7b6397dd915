package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/reconcile"
	"github.com/campusmedia/capsync/pkg/rooms"
)

func testRoomIndex() *rooms.Index {
	return rooms.NewIndex([]capture.Location{
		{ID: "loc1", Building: "Barrows", RoomNumber: "106", CaptureCapable: true},
		{ID: "loc2", Building: "Wheeler", RoomNumber: "150", CaptureCapable: false},
	}, nil)
}

func instructor(uid string) capture.Instructor {
	return capture.Instructor{UID: uid, Email: uid + "@berkeley.edu", LastName: "Instructor"}
}

func TestCoursesClassification(t *testing.T) {
	idx := testRoomIndex()
	courseIndex := reconcile.IndexCourses([]capture.CourseRecord{
		{ID: "crm1", SectionID: "10001"},
	})

	sections := []capture.Section{
		// In CRM already: always requires update, even with no instructors.
		{SectionID: "10001", Location: "Barrows 106"},
		// New, instructor, eligible room: requires update.
		{SectionID: "10002", Location: "Barrows 106", Instructors: []capture.Instructor{instructor("u1")}},
		// New, instructor, room exists but is not capture-capable.
		{SectionID: "10003", Location: "Wheeler 150", Instructors: []capture.Instructor{instructor("u2")}},
		// New, eligible room, zero instructors.
		{SectionID: "10004", Location: "Barrows 106"},
		// New, instructor, unknown room.
		{SectionID: "10005", Location: "Nowhere 1", Instructors: []capture.Instructor{instructor("u3")}},
	}

	results := reconcile.Courses(sections, courseIndex, idx)
	require.Len(t, results, 5)

	assert.True(t, results[0].ExistsInCRM)
	assert.Equal(t, "crm1", results[0].CRMID)
	assert.True(t, results[0].RequiresUpdate)

	assert.False(t, results[1].ExistsInCRM)
	assert.True(t, results[1].RequiresUpdate)

	assert.False(t, results[2].RequiresUpdate, "non-capable room is ineligible")
	assert.False(t, results[3].RequiresUpdate, "no instructors")
	assert.False(t, results[4].RequiresUpdate, "unknown room")
}

func TestIndexCoursesFirstWins(t *testing.T) {
	idx := reconcile.IndexCourses([]capture.CourseRecord{
		{ID: "crm1", SectionID: "10001"},
		{ID: "crm2", SectionID: "10001"},
	})
	require.Len(t, idx, 1)
	assert.Equal(t, "crm1", idx["10001"].ID)
}

func TestContactsDedupe(t *testing.T) {
	shared := instructor("u1")
	results := []capture.MatchResult{
		{
			Section:        capture.Section{SectionID: "10001", Instructors: []capture.Instructor{shared, instructor("u2")}},
			RequiresUpdate: true,
		},
		{
			Section:        capture.Section{SectionID: "10002", Instructors: []capture.Instructor{shared}},
			RequiresUpdate: true,
		},
		{
			// Not requires-update: its instructors must not be planned.
			Section: capture.Section{SectionID: "10003", Instructors: []capture.Instructor{instructor("u9")}},
		},
	}

	plan := reconcile.Contacts(results, map[string]string{"u2": "contact2"})

	require.Len(t, plan.Create, 1, "u1 appears once despite teaching two sections")
	assert.Equal(t, "u1", plan.Create[0].UID)
	assert.Equal(t, map[string]string{"u2": "contact2"}, plan.IDsByUID)
}

func TestMergeCreated(t *testing.T) {
	results := []capture.MatchResult{
		{
			Section:        capture.Section{SectionID: "10001", Instructors: []capture.Instructor{instructor("u1"), instructor("u2")}},
			RequiresUpdate: true,
		},
	}

	plan := reconcile.Contacts(results, map[string]string{"u2": "contact2"})
	require.Len(t, plan.Create, 1)

	plan.MergeCreated([]capture.UpsertResult{
		{Success: true, ID: "contact1"},
	})

	ids := plan.InstructorIDs(results[0].Section)
	assert.Equal(t, []string{"contact1", "contact2"}, ids)
}

func TestInstructorIDsSkipsUnknown(t *testing.T) {
	plan := reconcile.Contacts(nil, nil)
	section := capture.Section{Instructors: []capture.Instructor{instructor("ghost")}}
	assert.Empty(t, plan.InstructorIDs(section))
}
