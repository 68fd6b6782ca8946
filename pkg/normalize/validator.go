package normalize

import (
	"unicode/utf8"

	"github.com/fennecworks/dealscope/pkg/record"
)

// Valid reports whether a record carries the minimum information to be
// useful: a name of at least two characters, and at least one of
// description, website, sector, or email. Invalid records are expected
// from collectors and are silently dropped by the pipeline, not treated
// as errors.
func Valid(rec record.Record) bool {
	if utf8.RuneCountInString(rec.Name) < 2 {
		return false
	}
	return rec.Description != "" || rec.Website != "" || rec.Sector != "" || rec.Email != ""
}
