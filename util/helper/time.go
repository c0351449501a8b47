package helper_util

import "time"

// ParseTime parses the RFC3339 timestamps used on audit query windows and
// directory node properties.
func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
