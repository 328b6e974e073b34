package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateUniqueSlug(t *testing.T) {
	tests := []struct {
		name       string
		title      string
		wantPrefix string
	}{
		{
			name:       "plain title",
			title:      "Amsterdam Cardiology Summit",
			wantPrefix: "amsterdam-cardiology-summit-",
		},
		{
			name:       "title with copy suffix",
			title:      "Amsterdam Cardiology Summit Copy",
			wantPrefix: "amsterdam-cardiology-summit-copy-",
		},
		{
			name:       "punctuation collapses to single dashes",
			title:      "ECG & Echo: Hands-On!",
			wantPrefix: "ecg-echo-hands-on-",
		},
		{
			name:       "empty title falls back",
			title:      "",
			wantPrefix: "event-",
		},
		{
			name:       "symbols only falls back",
			title:      "!!!",
			wantPrefix: "event-",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slug := GenerateUniqueSlug(tc.title)

			assert.True(t, strings.HasPrefix(slug, tc.wantPrefix), "got %q", slug)
			assert.Len(t, slug, len(tc.wantPrefix)+slugSuffixLength)
			suffix := slug[len(tc.wantPrefix):]
			for _, r := range suffix {
				assert.Contains(t, string(slugAlphabet), string(r))
			}
		})
	}
}

func TestGenerateUniqueSlug_SuffixesDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		seen[GenerateUniqueSlug("Spring Symposium")] = true
	}

	// 20 draws from a 36^6 space colliding would mean the generator is
	// not random at all.
	assert.Greater(t, len(seen), 1)
}
