package docstore

import "time"

// StoredTime returns t the way a BSON datetime keeps it: UTC, millisecond
// precision. Values built with it compare equal to what a later read returns.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
