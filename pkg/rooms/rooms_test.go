package rooms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/logging"
	"github.com/campusmedia/capsync/pkg/rooms"
)

func testLocations() []capture.Location {
	return []capture.Location{
		{ID: "a01", Building: "BARROWS", RoomNumber: "106", CaptureCapable: true},
		{ID: "a02", Building: "Hertz", RoomNumber: "222", CaptureCapable: true},
		{ID: "a03", Building: "Wheeler", RoomNumber: "150", CaptureCapable: false},
		{ID: "a04", Building: "GPB", RoomNumber: "100", CaptureCapable: true},
	}
}

func TestResolveID(t *testing.T) {
	idx := rooms.NewIndex(testLocations(), nil)

	id, ok := idx.ResolveID("  BARROWS 106 ")
	require.True(t, ok)
	assert.Equal(t, "a01", id)

	id, ok = idx.ResolveID("hertz 222")
	require.True(t, ok)
	assert.Equal(t, "a02", id)

	_, ok = idx.ResolveID("BARROWS 107")
	assert.False(t, ok)
}

func TestResolveIDAlias(t *testing.T) {
	idx := rooms.NewIndex(testLocations(), nil)

	// Long-form building name in the EDO text matches the CRM's short code.
	id, ok := idx.ResolveID("Genetics & Plant Bio 100")
	require.True(t, ok)
	assert.Equal(t, "a04", id)
}

func TestEligible(t *testing.T) {
	idx := rooms.NewIndex(testLocations(), nil)

	assert.True(t, idx.Eligible("Barrows 106"))

	// Wheeler 150 exists in the CRM but is not capture-capable, so it is
	// excluded from the eligibility set even though ResolveID finds it.
	_, ok := idx.ResolveID("Wheeler 150")
	require.True(t, ok)
	assert.False(t, idx.Eligible("Wheeler 150"))

	assert.False(t, idx.Eligible("Nonexistent Hall 1"))
}

func TestDuplicateKeyFirstWins(t *testing.T) {
	log := logging.NewTestLogger(t)
	locations := []capture.Location{
		{ID: "first", Building: "Barrows", RoomNumber: "106", CaptureCapable: false},
		{ID: "second", Building: "BARROWS", RoomNumber: "106", CaptureCapable: true},
	}

	idx := rooms.NewIndex(locations, log.Logger)
	assert.Equal(t, 1, idx.Len())

	id, ok := idx.ResolveID("Barrows 106")
	require.True(t, ok)
	assert.Equal(t, "first", id)

	// First occurrence wins wholesale: the duplicate's capability flag does
	// not leak into the eligibility set.
	assert.False(t, idx.Eligible("Barrows 106"))

	assert.True(t, log.Contains("duplicate canonical location key"))
}
