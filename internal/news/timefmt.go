package news

import (
	"strconv"
	"strings"
	"time"
)

// TimestampLayout renders as "MM-DD HH:mm".
const TimestampLayout = "01-02 15:04"

// Stamp formats t in loc.
func Stamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimestampLayout)
}

var offsetLessLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FormatTimestamp converts a source timestamp into the display zone. Offsets
// in the source are honoured; timestamps without one are taken as UTC. Empty
// or unparsable input yields now.
func FormatTimestamp(raw string, loc *time.Location, now time.Time) string {
	t, ok := ParseTimestamp(raw)
	if !ok {
		return Stamp(now, loc)
	}
	return Stamp(t, loc)
}

// ParseTimestamp accepts unix seconds, RFC 3339 and RFC 1123 forms.
func ParseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if secs <= 0 {
			return time.Time{}, false
		}
		return time.Unix(secs, 0).UTC(), true
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	for _, layout := range offsetLessLayouts {
		if len(raw) >= len(layout) {
			if t, err := time.ParseInLocation(layout, raw[:len(layout)], time.UTC); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
