// Package token produces the opaque identifiers embedded in business and
// parking-session QR codes.
package token

import (
	"crypto/rand"
	"strings"
)

const (
	alphabet  = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	suffixLen = 32
)

// Generate returns seed + "-" + a 32-character random alphanumeric suffix
// drawn uniformly from [A-Za-z0-9]. Collisions are treated as negligible
// (62^32 token space); the store's unique index is the backstop and a
// collision on insert surfaces as a retryable unique-violation error.
func Generate(seed string) string {
	var b strings.Builder
	b.Grow(len(seed) + 1 + suffixLen)
	b.WriteString(seed)
	b.WriteByte('-')

	buf := make([]byte, suffixLen)
	for written := 0; written < suffixLen; {
		if _, err := rand.Read(buf); err != nil {
			// crypto/rand reads from the OS source and does not fail on
			// any supported platform.
			panic(err)
		}
		for _, c := range buf {
			// Rejection sampling keeps the distribution uniform over the
			// 62-character alphabet.
			if int(c) >= 256-(256%len(alphabet)) {
				continue
			}
			b.WriteByte(alphabet[int(c)%len(alphabet)])
			written++
			if written == suffixLen {
				break
			}
		}
	}

	return b.String()
}
