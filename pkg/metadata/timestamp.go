package metadata

import "time"

// timestampLayout is UTC ISO-8601 with millisecond precision and a literal
// trailing Z, per spec §3's enrollmentTimestamp definition.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in the record's canonical timestamp format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// ParseTimestamp validates and parses a record timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return time.Time{}, ErrBadTimestamp.Wrap(err.Error())
	}
	return t, nil
}
