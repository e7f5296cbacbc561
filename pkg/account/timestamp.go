package account

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// legacyLayouts are the zone-less layouts written by older data files. They
// are interpreted in local time.
var legacyLayouts = []string{
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTime parses an RFC3339 timestamp, falling back to the zone-less
// layouts older roster files used.
func ParseTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	for _, layout := range legacyLayouts {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("account: unrecognized timestamp %q", v)
}

// Timestamp is a point in time that round-trips through JSON as RFC3339.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

func (t *Timestamp) MarshalJSON() ([]byte, error) {
	if t == nil || t.IsZero() {
		return []byte(`null`), nil
	}
	return json.Marshal(FormatTime(t.Time))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw *string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == nil || *raw == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(*raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) String() string {
	return t.Local().Format("2006-01-02 15:04")
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
