package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusmedia/capsync/pkg/capture"
	"github.com/campusmedia/capsync/pkg/errors"
)

func TestTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"midnight as 24", "24:00", "12:00am"},
		{"midnight as 00", "00:00", "00:00am"},
		{"just before 1am", "00:59", "00:59am"},
		{"noon", "12:00", "12:00pm"},
		{"early afternoon", "13:59", "01:59pm"},
		{"morning", "09:30", "09:30am"},
		{"late evening", "23:45", "11:45pm"},
		{"eleven am", "11:00", "11:00am"},
		{"single digit hour", "4:05", "04:05am"},
		{"surrounding whitespace", "  14:10  ", "02:10pm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Time(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Regexp(t, `^\d{2}:\d{2}(am|pm)$`, got)
		})
	}
}

func TestTimeBlank(t *testing.T) {
	for _, raw := range []string{"", "  ", "\t"} {
		got, err := Time(raw)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestTimeInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"hour out of range", "30:00"},
		{"24 with minutes", "24:30"},
		{"minute out of range", "4:65"},
		{"not numeric", "noon"},
		{"missing colon", "1200"},
		{"alpha hour", "ab:30"},
		{"negative hour", "-1:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Time(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))

			var timeErr *errors.InvalidTimeError
			require.ErrorAs(t, err, &timeErr)
			assert.Equal(t, tt.raw, timeErr.Raw)
		})
	}
}

func TestWeekdays(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"tuesday thursday", "tuth", "Tuesday, Thursday"},
		{"single day", "FR", "Friday"},
		{"reordered input", "FRMOWE", "Monday, Wednesday, Friday"},
		{"mixed case", "MoWeFr", "Monday, Wednesday, Friday"},
		{"all seven", "SUMOTUWETHFRSA", "Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday"},
		{"sunday last in input", "MOSU", "Sunday, Monday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Weekdays(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekdaysBlank(t *testing.T) {
	for _, raw := range []string{"", "   "} {
		got, err := Weekdays(raw)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestWeekdaysInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "blargh"},
		{"long-form day name", "Mon"},
		{"trailing junk", "TUTHZO"},
		{"repeated code", "MOMO"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Weekdays(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.IsInvalidInput(err))

			var dayErr *errors.InvalidWeekdayError
			require.ErrorAs(t, err, &dayErr)
			assert.Equal(t, tt.raw, dayErr.Raw)
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		section capture.Section
		want    string
	}{
		{
			name:    "explicit display name wins",
			section: capture.Section{DisplayName: "Intro CS", Department: "COMPSCI", CatalogID: "61A", Title: "ignored"},
			want:    "Intro CS",
		},
		{
			name:    "department and catalog id",
			section: capture.Section{Department: "COMPSCI", CatalogID: "61A"},
			want:    "COMPSCI 61A",
		},
		{
			name:    "falls back to title",
			section: capture.Section{Department: "COMPSCI", Title: "Structure of Programs"},
			want:    "Structure of Programs",
		},
		{
			name:    "section number with format",
			section: capture.Section{Department: "COMPSCI", CatalogID: "61A", InstructionFormat: "LEC", SectionNumber: "001"},
			want:    "COMPSCI 61A, LEC 001",
		},
		{
			name:    "section number without format",
			section: capture.Section{Department: "COMPSCI", CatalogID: "61A", SectionNumber: "001"},
			want:    "COMPSCI 61A, 001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.section))
		})
	}
}

func TestLocation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"strips whitespace and case", "  BARROWS 106 ", "barrows106"},
		{"interior whitespace", "Anna Head A 201", "annaheada201"},
		{"already canonical", "hertz222", "hertz222"},
		{"alias long form to short code", "Genetics & Plant Bio 100", "gpb100"},
		{"diacritics stripped", "Bárrows 106", "barrows106"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Location(tt.raw))
		})
	}
}

// The alias substitution is one-directional: a CRM location already using
// the short code never expands back to the long form.
func TestLocationAliasOneWay(t *testing.T) {
	assert.Equal(t, "gpb100", Location("GPB 100"))
	assert.Equal(t, Location("Genetics & Plant Bio 100"), Location("GPB 100"))
}
