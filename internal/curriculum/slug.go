package curriculum

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify lowercases s and replaces every run of non-alphanumeric
// characters with a single hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// UniqueSlug appends -2, -3, ... to base until taken reports it as free.
// Slugs are assigned once at creation and never change afterwards.
func UniqueSlug(base string, taken func(string) (bool, error)) (string, error) {
	slug := base
	for n := 2; ; n++ {
		inUse, err := taken(slug)
		if err != nil {
			return "", err
		}
		if !inUse {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
}
