package example

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
)

// EpochTime is an instant written in fixtures as seconds since the Unix
// epoch, optionally with a fractional part. RFC 3339 strings are accepted on
// input as well.
type EpochTime time.Time

// Epoch returns the EpochTime for the given seconds since the Unix epoch.
func Epoch(sec int64) EpochTime {
	return EpochTime(time.Unix(sec, 0).UTC())
}

// Time returns the instant as a time.Time.
func (e EpochTime) Time() time.Time {
	return time.Time(e)
}

// Unix returns the instant as seconds since the Unix epoch.
func (e EpochTime) Unix() int64 {
	return time.Time(e).Unix()
}

// Equal reports whether both values denote the same instant.
func (e EpochTime) Equal(o EpochTime) bool {
	return time.Time(e).Equal(time.Time(o))
}

func (e *EpochTime) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return e.UnmarshalText([]byte(s))
	}
	return e.UnmarshalText([]byte(raw))
}

func (e EpochTime) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(e.Unix(), 10)), nil
}

// MarshalYAML keeps the instant numeric in YAML output.
func (e EpochTime) MarshalYAML() (any, error) {
	return e.Unix(), nil
}

func (e *EpochTime) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		*e = Epoch(sec)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		whole, frac := math.Modf(f)
		*e = EpochTime(time.Unix(int64(whole), int64(frac*1e9)).UTC())
		return nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("invalid instant %q: expected epoch seconds or RFC 3339", s)
	}
	*e = EpochTime(t.UTC())
	return nil
}

func (e EpochTime) MarshalText() ([]byte, error) {
	return []byte(strconv.FormatInt(e.Unix(), 10)), nil
}

// JSONSchema accepts both spellings UnmarshalText understands.
func (EpochTime) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Description: "seconds since the Unix epoch, or an RFC 3339 timestamp",
		OneOf: []*jsonschema.Schema{
			{Type: "number"},
			{Type: "string", Format: "date-time"},
		},
	}
}
