package resilience

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/casefile-ai/casefile/src/models"
)

func TestMessageClassifier_QuotaVocabulary(t *testing.T) {
	classifier := NewMessageClassifier()

	quotaMessages := []string{
		"you have hit your daily token budget",
		"Quota exceeded for this organization",
		"request limit exceeded, upgrade your plan",
		"rate_limit_reached for model llama-3.1-8b-instant",
		"no tokens per day remaining",
	}

	for _, msg := range quotaMessages {
		assert.Equal(t, models.FailureQuotaExhausted, classifier.Classify(errors.New(msg)),
			"message %q should classify as quota exhaustion", msg)
	}
}

func TestMessageClassifier_QuotaBeatsRateLimit(t *testing.T) {
	classifier := NewMessageClassifier()

	// A 429 whose body names the daily budget is exhaustion, not throttling.
	err := errors.New("429: tokens per day consumed")

	assert.Equal(t, models.FailureQuotaExhausted, classifier.Classify(err))
}

func TestMessageClassifier_RateLimited(t *testing.T) {
	classifier := NewMessageClassifier()

	assert.Equal(t, models.FailureRateLimited, classifier.Classify(errors.New("HTTP 429 returned")))
	assert.Equal(t, models.FailureRateLimited, classifier.Classify(errors.New("rate limit hit, slow down")))
}

type statusErr struct {
	code int
}

func (e *statusErr) Error() string {
	return "service throttled the request"
}

func (e *statusErr) HTTPStatusCode() int {
	return e.code
}

func TestMessageClassifier_StructuredStatus(t *testing.T) {
	classifier := NewMessageClassifier()

	assert.Equal(t, models.FailureRateLimited, classifier.Classify(&statusErr{code: 429}),
		"a structured 429 classifies without text markers")
	assert.Equal(t, models.FailureRateLimited, classifier.Classify(fmt.Errorf("calling upstream: %w", &statusErr{code: 429})),
		"wrapped structured errors are found through the chain")
	assert.Equal(t, models.FailureUnknown, classifier.Classify(&statusErr{code: 500}))
}

func TestMessageClassifier_Unknown(t *testing.T) {
	classifier := NewMessageClassifier()

	assert.Equal(t, models.FailureUnknown, classifier.Classify(errors.New("connection refused")))
	assert.Equal(t, models.FailureUnknown, classifier.Classify(nil))
}

func TestWaitHint_RetrySeconds(t *testing.T) {
	now := time.Unix(1735689600, 0)

	wait, ok := WaitHint(errors.New("Please retry after 30 seconds"), now)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, wait)

	wait, ok = WaitHint(errors.New("throttled, retry in 7.5 seconds"), now)
	assert.True(t, ok)
	assert.Equal(t, 7500*time.Millisecond, wait)
}

func TestWaitHint_ResetTimestamp(t *testing.T) {
	now := time.Unix(1735689600, 0)

	wait, ok := WaitHint(errors.New(`{"rate_limit_reset": 1735689630}`), now)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, wait)
}

func TestWaitHint_ResetTimestampInPast(t *testing.T) {
	now := time.Unix(1735689600, 0)

	wait, ok := WaitHint(errors.New("rate_limit_reset=1735689500"), now)
	assert.True(t, ok)
	assert.Equal(t, time.Duration(0), wait, "past reset times floor at zero")
}

func TestWaitHint_NoHint(t *testing.T) {
	now := time.Unix(1735689600, 0)

	_, ok := WaitHint(errors.New("rate limit"), now)
	assert.False(t, ok)

	_, ok = WaitHint(nil, now)
	assert.False(t, ok)
}
