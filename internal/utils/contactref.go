package utils

import (
	"fmt"
	"regexp"
	"strconv"
)

// ContactMarker prefixes every todo generated from a contact submission.
const ContactMarker = "📧"

// Contact back-references live inside free todo text as a bracketed
// "[ID:n]" token. Keep encode and decode together here so the format can
// later become a structured reference without touching call sites.

var contactRefRe = regexp.MustCompile(`\[ID:(\d+)\]`)

// EncodeContactRef renders the back-reference token for a contact id
func EncodeContactRef(contactID int64) string {
	return fmt.Sprintf("[ID:%d]", contactID)
}

// ParseContactRef extracts the contact id embedded in a todo's text.
// The second return is false when no token is present.
func ParseContactRef(text string) (int64, bool) {
	m := contactRefRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
