package marc

import (
	"regexp"
	"strings"
	"unicode"
)

// directorTitlePattern matches the opening of a director credit in a 245_b
// subtitle: "(režisors", "(rež.", and Russian spellings with their
// declensions.
var directorTitlePattern = regexp.MustCompile(`(?i)\((?:rež(?:isors?|isore?|isori|isores?|\.)|режисс[её]р(?:а|ы|ом|у|е|ов|ям|ями|ях)?)`)

var (
	quotedTitlePattern = regexp.MustCompile(`"([^"]+)"`)
	bracedAuthor       = regexp.MustCompile(`\{([^}]+)\}`)
	titleAfterBrace    = regexp.MustCompile(`\}\s*([^/]+?)\s*/`)
	publisherAfterSlug = regexp.MustCompile(`/\s*[^:]*:\s*([^,]+)`)
	spaceRun           = regexp.MustCompile(`\s+`)
)

// ExtractDirector pulls director name(s) out of a 245_b subtitle like
// "filma "X" (režisors un scenārists Jānis Streičs)". Multiple directors
// separated by commas are joined with ", ". Returns "" when no credit found.
func ExtractDirector(text string) string {
	if text == "" {
		return ""
	}
	loc := directorTitlePattern.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[1]:]
	end := strings.IndexByte(rest, ')')
	if end < 0 {
		return ""
	}
	credit := strings.TrimSpace(rest[:end])

	// Skip connective words ("un scenārists") before the first capitalized
	// word, which starts the actual name.
	words := strings.Fields(credit)
	start := 0
	for i, word := range words {
		runes := []rune(word)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			start = i
			break
		}
	}
	credit = strings.Join(words[start:], " ")
	if credit == "" {
		return ""
	}

	var directors []string
	for _, part := range strings.Split(credit, ",") {
		if name := spaceRun.ReplaceAllString(strings.TrimSpace(part), " "); name != "" {
			directors = append(directors, name)
		}
	}
	return strings.Join(directors, ", ")
}

// ExtractQuotedTitle returns the first double-quoted phrase, typically the
// film or performance title in a 245_b subtitle.
func ExtractQuotedTitle(text string) string {
	match := quotedTitlePattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// ExtractAuthor500 pulls the reviewed work's author from a 500_a note, where
// it appears as "{Surname, Name.}". The name is flipped to "Name Surname".
func ExtractAuthor500(text string) string {
	match := bracedAuthor.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	author := strings.TrimRight(strings.TrimSpace(match[1]), ".")
	return FlipName(author)
}

// ExtractTitle500 pulls the reviewed work's title: the text between the
// closing brace and the slash.
func ExtractTitle500(text string) string {
	match := titleAfterBrace.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return spaceRun.ReplaceAllString(strings.TrimSpace(match[1]), " ")
}

// ExtractPublisher500 pulls the publisher: the text between the colon after
// the slash and the following comma.
func ExtractPublisher500(text string) string {
	match := publisherAfterSlug.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	return spaceRun.ReplaceAllString(strings.TrimSpace(match[1]), " ")
}
