package service

import (
	"crypto/rand"
	"math/big"
	"strings"
	"unicode"
)

const slugSuffixLength = 6

var slugAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// GenerateUniqueSlug turns a title into a URL slug with a short random
// suffix. Uniqueness is enforced by the database's unique index; a
// suffix collision fails the write and the caller retries the whole
// request.
func GenerateUniqueSlug(title string) string {
	base := slugify(title)
	if base == "" {
		base = "event"
	}

	return base + "-" + randomSuffix()
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	return strings.Trim(b.String(), "-")
}

func randomSuffix() string {
	b := make([]rune, slugSuffixLength)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform source is
			// broken; fall back to a fixed rune rather than panic.
			b[i] = 'x'
			continue
		}
		b[i] = slugAlphabet[n.Int64()]
	}

	return string(b)
}
