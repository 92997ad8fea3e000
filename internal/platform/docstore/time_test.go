package docstore

import (
	"testing"
	"time"
)

func TestStoredTime(t *testing.T) {
	t.Parallel()

	in := time.Date(2024, 3, 8, 23, 59, 59, 999_999_999, time.FixedZone("UTC+7", 7*60*60))
	got := StoredTime(in)

	want := time.Date(2024, 3, 8, 16, 59, 59, 999_000_000, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("StoredTime()=%v want %v", got, want)
	}
}
