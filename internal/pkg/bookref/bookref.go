// Package bookref formats human-readable booking references of the form
// <PREFIX>-<epoch-tail>-<seq>, e.g. "PB-482913-7". The sequence part comes
// from a database sequence so references stay unique across restarts; the
// epoch tail only makes them easier to eyeball.
package bookref

import (
	"fmt"
	"regexp"
	"time"
)

const epochTailMod = 1_000_000

var refPattern = regexp.MustCompile(`^[A-Z]{2}-\d{1,6}-\d+$`)

// Format builds a booking reference from a domain prefix and a
// storage-backed sequence number, stamped with the given time.
func Format(prefix string, seq int64, at time.Time) string {
	return fmt.Sprintf("%s-%d-%d", prefix, at.Unix()%epochTailMod, seq)
}

// New builds a booking reference stamped with the current time.
func New(prefix string, seq int64) string {
	return Format(prefix, seq, time.Now().UTC())
}

// Valid reports whether s looks like a booking reference.
func Valid(s string) bool {
	return refPattern.MatchString(s)
}
