package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestInvalidTimeErrorIs(t *testing.T) {
	err := NewInvalidTimeError("25:00", "hour out of range")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("InvalidTimeError should match ErrInvalidInput")
	}
	if !IsInvalidInput(err) {
		t.Error("IsInvalidInput should be true")
	}
}

func TestInvalidWeekdayErrorIs(t *testing.T) {
	err := NewInvalidWeekdayError("blargh", "no weekday codes recognized")
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("InvalidWeekdayError should match ErrInvalidInput")
	}
}

func TestUpsertErrorCarriesRecord(t *testing.T) {
	record := map[string]string{"Section_ID__c": "10001"}
	err := NewUpsertError("Course__c", record, "REQUIRED_FIELD_MISSING")

	if !IsUpsertFailure(err) {
		t.Error("IsUpsertFailure should be true")
	}

	var upsertErr *UpsertError
	if !errors.As(err, &upsertErr) {
		t.Fatal("errors.As should find UpsertError")
	}
	if upsertErr.Object != "Course__c" {
		t.Errorf("Object = %q, want Course__c", upsertErr.Object)
	}
}

func TestQueryErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewQueryError("edo", "sections", cause)

	if !errors.Is(err, cause) {
		t.Error("QueryError should unwrap to its cause")
	}
	if !IsSourceUnavailable(err) {
		t.Error("QueryError should match ErrSourceUnavailable")
	}
}

func TestAPIErrorStatusClassification(t *testing.T) {
	serverErr := NewAPIError("/objects/courses", 503, "down")
	if !IsSourceUnavailable(serverErr) {
		t.Error("5xx should classify as source unavailable")
	}

	clientErr := NewAPIError("/objects/courses", 400, "bad request")
	if IsSourceUnavailable(clientErr) {
		t.Error("4xx should not classify as source unavailable")
	}
}

func TestWrapHelpersNilPassthrough(t *testing.T) {
	if WrapQuery("edo", "sections", nil) != nil {
		t.Error("WrapQuery(nil) should be nil")
	}
	if WrapAPI("/x", 0, nil) != nil {
		t.Error("WrapAPI(nil) should be nil")
	}
	if WrapValidation("field", nil) != nil {
		t.Error("WrapValidation(nil) should be nil")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewInvalidTimeError("4:65", "minute out of range"), `invalid meeting time "4:65": minute out of range`},
		{NewConfigError("crm", "CAPSYNC_CRM_URL is required", nil), "configuration error in crm: CAPSYNC_CRM_URL is required"},
		{NewQueryError("sis", "instructors", errors.New("timeout")), "query error from sis during instructors: timeout"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func ExampleIsUpsertFailure() {
	err := NewUpsertError("Contact", nil, "duplicate UID")
	fmt.Println(IsUpsertFailure(err))
	// Output: true
}
