// Package idgen generates monotonic, prefixed identifiers for store entities.
//
// Unlike the teacher's hash-based issue IDs (collision-probed, content-free),
// this package's identifiers must sort with creation time per the Migration
// invariant in spec.md §3 ("identifier... monotonic with creation time"), so
// the timestamp goes in the ID itself rather than being probed for collisions.
package idgen

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// New returns a new identifier of the form "<prefix>_<base36 unix nanos><4 random base36 chars>".
// The timestamp component makes two IDs from the same prefix compare in creation order
// under plain string comparison; the random suffix avoids collisions within the same
// nanosecond (relevant under test, where clock resolution can be coarser).
func New(prefix string) string {
	return fmt.Sprintf("%s_%s%s", prefix, toBase36(uint64(time.Now().UnixNano())), randomBase36(4))
}

func toBase36(n uint64) string {
	if n == 0 {
		return "0"
	}
	var b strings.Builder
	digits := make([]byte, 0, 16)
	for n > 0 {
		digits = append(digits, base36Alphabet[n%36])
		n /= 36
	}
	for i := len(digits) - 1; i >= 0; i-- {
		b.WriteByte(digits[i])
	}
	return b.String()
}

func randomBase36(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// Degrade to a fixed suffix rather than panicking; collisions become
		// possible only in the pathological case where crypto/rand itself fails.
		for i := range buf {
			buf[i] = 'x'
		}
		return string(buf)
	}
	out := make([]byte, n)
	for i, c := range buf {
		out[i] = base36Alphabet[int(c)%36]
	}
	return string(out)
}

// IsValidBase36 reports whether s contains only lowercase base-36 characters.
// Grounded on the teacher's isValidBase36 helper (internal/storage/sqlite/ids.go).
func IsValidBase36(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'z')) {
			return false
		}
	}
	return true
}
