package marc

import (
	"regexp"
	"strings"
)

// namePattern captures "Surname, Name" where the surname may contain hyphens,
// spaces, apostrophes and periods.
var namePattern = regexp.MustCompile(`([^,]+),\s*([^,]+)`)

// FlipName turns "Surname, Name" into "Name Surname". Text without the
// pattern is returned unchanged.
func FlipName(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return text
	}
	match := namePattern.FindStringSubmatch(trimmed)
	if match == nil {
		return text
	}
	return strings.TrimSpace(match[2]) + " " + strings.TrimSpace(match[1])
}
