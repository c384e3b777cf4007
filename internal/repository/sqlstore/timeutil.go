package sqlstore

import "time"

// SQLite keeps the offset in stored timestamps and compares them as text, so
// every time written or used in a comparison is normalized to UTC.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
