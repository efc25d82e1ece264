// Package cuid2 generates prefixed, collision-resistant identifiers such as
// "ord_1rK5iqX2b9QmT0cLw3ZpYd".
package cuid2

import (
	"crypto/rand"
	"strings"
	"time"
)

const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	timestampLength = 6
	randomLength    = 18
)

// encodeTimestamp writes seconds as a fixed-width base62 string so that IDs
// created later sort after earlier ones.
func encodeTimestamp(seconds int64) string {
	out := make([]byte, timestampLength)
	for i := timestampLength - 1; i >= 0; i-- {
		out[i] = alphabet[seconds%62]
		seconds /= 62
	}
	return string(out)
}

// randomString returns n uniformly distributed base62 characters. Six bits are
// drawn per character and values of 62 or 63 are rejected.
func randomString(n int) string {
	var b strings.Builder
	b.Grow(n)

	buf := make([]byte, n+n/8+4)
	for b.Len() < n {
		if _, err := rand.Read(buf); err != nil {
			panic("cuid2: failed to read random bytes: " + err.Error())
		}
		for _, v := range buf {
			v &= 0x3f
			if v < 62 {
				b.WriteByte(alphabet[v])
				if b.Len() == n {
					break
				}
			}
		}
	}
	return b.String()
}

// New returns prefix + "_" + a time-sortable 24 character body.
func New(prefix string) string {
	return newAt(prefix, time.Now())
}

func newAt(prefix string, t time.Time) string {
	return prefix + "_" + encodeTimestamp(t.Unix()) + randomString(randomLength)
}
