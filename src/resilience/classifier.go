package resilience

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/casefile-ai/casefile/src/models"
)

// quotaVocabulary are the daily-limit indicators. Any match means the account
// is out of tokens for the day: retrying is pointless until the window rolls.
var quotaVocabulary = []string{
	"daily",
	"quota",
	"limit exceeded",
	"rate_limit_reached",
	"tokens per day",
}

// statusCoder is satisfied by errors that carry a structured HTTP status.
type statusCoder interface {
	HTTPStatusCode() int
}

// MessageClassifier classifies remote-call failures. It prefers structured
// status codes when the error chain carries them and falls back to message
// text heuristics, which is all most SDK errors offer.
type MessageClassifier struct{}

func NewMessageClassifier() *MessageClassifier {
	return &MessageClassifier{}
}

// Classify checks the quota vocabulary first: a 429 whose body mentions the
// daily token budget is exhaustion, not throttling.
func (MessageClassifier) Classify(err error) models.FailureKind {
	if err == nil {
		return models.FailureUnknown
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range quotaVocabulary {
		if strings.Contains(msg, marker) {
			return models.FailureQuotaExhausted
		}
	}

	var sc statusCoder
	if errors.As(err, &sc) && sc.HTTPStatusCode() == http.StatusTooManyRequests {
		return models.FailureRateLimited
	}
	if strings.Contains(msg, "429") || strings.Contains(msg, "rate") {
		return models.FailureRateLimited
	}

	return models.FailureUnknown
}

var (
	retryAfterPattern = regexp.MustCompile(`(?i)retry[^0-9]*(\d+(?:\.\d+)?)\s*seconds?`)
	resetEpochPattern = regexp.MustCompile(`rate_limit_reset\D{0,40}?(\d{10})\b`)
)

// WaitHint extracts a server-suggested wait from a failure's message text via
// two patterns: "retry ... <N> seconds", or a 10-digit Unix timestamp
// following "rate_limit_reset" converted to a wait-until delta. The result is
// floored at zero; the executor caps it.
func WaitHint(err error, now time.Time) (time.Duration, bool) {
	if err == nil {
		return 0, false
	}
	msg := err.Error()

	if m := retryAfterPattern.FindStringSubmatch(msg); m != nil {
		if secs, convErr := strconv.ParseFloat(m[1], 64); convErr == nil {
			return time.Duration(secs * float64(time.Second)), true
		}
	}

	if m := resetEpochPattern.FindStringSubmatch(msg); m != nil {
		if epoch, convErr := strconv.ParseInt(m[1], 10, 64); convErr == nil {
			wait := time.Unix(epoch, 0).Sub(now)
			if wait < 0 {
				wait = 0
			}
			return wait, true
		}
	}

	return 0, false
}
