package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/casefile-ai/casefile/src/models"
)

func TestContentClassifier_RoutineContent(t *testing.T) {
	classifier := NewContentClassifier()

	tier := classifier.Classify("The staff meeting covered next quarter's lab schedule and the new coffee machine.")

	assert.Equal(t, models.TierStandard, tier, "routine content should stay on the standard tier")
}

func TestContentClassifier_SuspiciousContent(t *testing.T) {
	classifier := NewContentClassifier()

	tier := classifier.Classify("She was seen on camera tampering with the prototype before the footage was deleted.")

	assert.Equal(t, models.TierEscalated, tier, "evidence tampering should escalate")
}

func TestContentClassifier_CaseInsensitive(t *testing.T) {
	classifier := NewContentClassifier()

	assert.Equal(t, models.TierEscalated, classifier.Classify("Possible MURDER attempt reported."))
	assert.Equal(t, models.TierEscalated, classifier.Classify("Unauthorized access to the server room."))
}

func TestContentClassifier_KeywordAsSubstring(t *testing.T) {
	classifier := NewContentClassifier()

	// "tamper" must match inside "tampered"
	assert.Equal(t, models.TierEscalated, classifier.Classify("Logs appear to have been tampered with."))
}

func TestContentClassifier_CustomKeywords(t *testing.T) {
	classifier := NewContentClassifier("forgery")

	assert.Equal(t, models.TierEscalated, classifier.Classify("The signature is a forgery."))
	assert.Equal(t, models.TierStandard, classifier.Classify("A murder was reported."),
		"custom vocabulary replaces the default list")
}

func TestContentClassifier_Deterministic(t *testing.T) {
	classifier := NewContentClassifier()
	text := "Security noted a possible break-in on the 3rd floor."

	first := classifier.Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(text))
	}
}
