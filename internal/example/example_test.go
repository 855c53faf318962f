package example

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestStatus_UnmarshalText(t *testing.T) {
	var s Status
	if err := s.UnmarshalText([]byte("BLOCKED")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StatusBlocked {
		t.Fatalf("expected %s, got %s", StatusBlocked, s)
	}

	err := s.UnmarshalText([]byte("active"))
	if err == nil {
		t.Fatal("expected error for lower-case constant")
	}
	if !strings.Contains(err.Error(), "ACTIVE, INACTIVE, BLOCKED") {
		t.Fatalf("error should list the valid constants, got %v", err)
	}
}

func TestEpochTime_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "integer seconds", input: "1123123123123", want: time.Unix(1123123123123, 0)},
		{name: "fractional seconds", input: "10.5", want: time.Unix(10, 500000000)},
		{name: "rfc3339 string", input: `"2018-01-02T03:04:05Z"`, want: time.Date(2018, 1, 2, 3, 4, 5, 0, time.UTC)},
		{name: "garbage", input: `"yesterday"`, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var e EpochTime
			err := json.Unmarshal([]byte(tc.input), &e)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !e.Time().Equal(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, e.Time())
			}
		})
	}
}

func TestOrder_Validate(t *testing.T) {
	o := &Order{ID: "0001", Products: []Product{{ID: "P1"}, {Name: "no id"}}}
	err := o.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "products[1]") {
		t.Fatalf("error should point at the offending product, got %v", err)
	}
}

func TestEpochTime_JSONSchema(t *testing.T) {
	s := EpochTime{}.JSONSchema()

	var types []string
	for _, alt := range s.OneOf {
		types = append(types, alt.Type+"/"+alt.Format)
	}
	if diff := cmp.Diff([]string{"number/", "string/date-time"}, types); diff != "" {
		t.Errorf("alternatives mismatch (-want +got):\n%s", diff)
	}

	// Every accepted spelling must match one of the alternatives.
	for _, input := range []string{"1514764800", `"2018-01-01T00:00:00Z"`} {
		var e EpochTime
		if err := json.Unmarshal([]byte(input), &e); err != nil {
			t.Errorf("%s: unexpected error: %v", input, err)
		}
	}
}
