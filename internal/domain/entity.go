// Package domain defines the storefront's entity types and the pure functions
// that derive their computed fields (slugs, coupon status, tax rates, state
// transitions). Entities are persisted as JSON documents by the store package;
// nothing in this package touches storage.
package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NewID returns a collection-scoped identifier of the form
// "{prefix}_{epochMillis}". Two entities created inside the same millisecond
// in the same collection would collide; for interactive admin/storefront
// mutations that risk is accepted, matching the stored data already in the
// wild. High-frequency collections must use NewSuffixedID instead.
func NewID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d", prefix, now.UnixMilli())
}

// NewSuffixedID returns "{prefix}_{epochMillis}_{rand}" for collections that
// can receive multiple records per millisecond (activity logs, notification
// logs).
func NewSuffixedID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", prefix, now.UnixMilli(), uuid.NewString()[:8])
}

// stripMarks removes combining marks after NFD decomposition, so that
// "Café Été" slugs the same as "Cafe Ete".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL slug from a human-readable name or title: diacritics
// folded, lowercased, every run of non-alphanumeric characters collapsed to a
// single hyphen, leading/trailing hyphens stripped.
//
// Collisions are not checked; two products named identically produce the same
// slug.
func Slugify(s string) string {
	if folded, _, err := transform.String(stripMarks, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
