package domain

import "fmt"

// maxNonMatchValueLen bounds how much of a gt/pred value is kept for
// display in a NonMatch record (§4.8: "stringified for display; may be
// truncated").
const maxNonMatchValueLen = 200

// Stringify renders v for human-readable non-match reporting, truncating
// long values so a large blob field cannot blow up the non-match list.
func Stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	s := fmt.Sprintf("%v", v)
	if len(s) > maxNonMatchValueLen {
		return s[:maxNonMatchValueLen] + "…"
	}
	return s
}
