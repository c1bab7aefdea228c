package router

import (
	"strings"

	"github.com/casefile-ai/casefile/src/models"
)

// severityKeywords marks content that warrants the escalated model: terms
// connoting violence, crime, unauthorized access, or evidence tampering.
var severityKeywords = []string{
	"murder", "killed", "weapon", "poison", "blood", "attack",
	"threat", "sabotage", "espionage", "theft", "stolen",
	"unauthorized", "tamper", "deleted", "destroyed", "break-in",
}

type ContentClassifier struct {
	keywords []string
}

// NewContentClassifier builds a classifier over the given keyword list, or the
// default severity vocabulary when none is given.
func NewContentClassifier(keywords ...string) *ContentClassifier {
	if len(keywords) == 0 {
		keywords = severityKeywords
	}
	return &ContentClassifier{keywords: keywords}
}

// Classify scans the input case-insensitively and escalates on any keyword
// hit. Pure and deterministic, no side effects.
func (c *ContentClassifier) Classify(text string) models.Tier {
	lower := strings.ToLower(text)
	for _, keyword := range c.keywords {
		if strings.Contains(lower, keyword) {
			return models.TierEscalated
		}
	}
	return models.TierStandard
}
