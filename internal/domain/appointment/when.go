package appointment

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// layouts are tried before falling back to dateparse; they cover ISO-8601
// input and the HTML datetime-local control.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime reads a human-entered date/time. Values without an explicit
// offset are taken to be in loc. The result is in UTC.
func ParseTime(raw string, loc *time.Location) (time.Time, error) {
	s := strings.TrimSpace(raw)

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
