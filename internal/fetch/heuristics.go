package fetch

import (
	"regexp"
	"strings"
)

const titleSeparator = " - "

var (
	professionIndicators = []string{"PhD", "Dr.", "Professor", "CEO", "Founder"}
	organizationKeywords = []string{"university", "institute", "organization", "company"}
	parenthetical        = regexp.MustCompile(`\(([^)]*)\)`)
)

// PodcastName takes the show name from a "Show - ..." title, falling back to
// the channel or uploader name.
func PodcastName(title, fallback string) string {
	if head, _, ok := strings.Cut(title, titleSeparator); ok {
		if head = strings.TrimSpace(head); head != "" {
			return head
		}
	}
	return strings.TrimSpace(fallback)
}

// IntervieweeName guesses the guest from a title. "Show - Guest - Topic"
// yields Guest, "Show - Guest" yields Guest, "Topic | Guest" yields Guest.
// Anything else returns the whole title.
func IntervieweeName(title string) string {
	title = strings.TrimSpace(title)
	if strings.Contains(title, titleSeparator) {
		parts := strings.Split(title, titleSeparator)
		if len(parts) > 2 {
			return strings.TrimSpace(parts[1])
		}
		return strings.TrimSpace(parts[len(parts)-1])
	}
	if idx := strings.LastIndex(title, "|"); idx >= 0 {
		if guest := strings.TrimSpace(title[idx+1:]); guest != "" {
			return guest
		}
	}
	return title
}

// Profession returns the first credential indicator mentioned in description.
func Profession(description string) string {
	lowered := strings.ToLower(description)
	for _, indicator := range professionIndicators {
		if strings.Contains(lowered, strings.ToLower(indicator)) {
			return indicator
		}
	}
	return ""
}

// Organization returns the first parenthesized phrase in description, or the
// first of its opening five lines that names an institution.
func Organization(description string) string {
	if m := parenthetical.FindStringSubmatch(description); m != nil {
		return strings.TrimSpace(m[1])
	}
	lines := strings.Split(description, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}
	for _, line := range lines {
		lowered := strings.ToLower(line)
		for _, keyword := range organizationKeywords {
			if strings.Contains(lowered, keyword) {
				return strings.TrimSpace(line)
			}
		}
	}
	return ""
}
