package utils

import (
	"strings"

	"github.com/casefile-ai/casefile/src/models"
)

// EstimateTokenCount estimates token count from text (rough approximation)
// More accurate: ~1 token per 4 characters for English
func EstimateTokenCount(text string) int {
	text = strings.TrimSpace(text)

	tokenCount := len(text) / 4

	// Add some buffer for special tokens
	if tokenCount < 10 {
		tokenCount = 10
	}

	return tokenCount
}

// CalculateBatchMetrics accounts for one batched call against the separate
// calls it replaced. Every question after the first would have resent the
// full text, which is where the batching savings come from.
func CalculateBatchMetrics(text string, questions []string, result *models.Result) *models.TokenMetrics {
	promptTokens := EstimateTokenCount(text)
	for _, q := range questions {
		promptTokens += EstimateTokenCount(q)
	}

	answerTokens := 0
	for _, a := range result.Answers {
		answerTokens += EstimateTokenCount(a)
	}

	metrics := &models.TokenMetrics{
		PromptTokens: promptTokens,
		AnswerTokens: answerTokens,
		TotalTokens:  promptTokens + answerTokens,
		Model:        result.ModelUsed,
	}

	if result.CacheHit || result.Degraded {
		// Served locally, so the remote spend was zero.
		metrics.TokensSaved = metrics.TotalTokens
		metrics.TotalTokens = 0
		if result.CacheHit {
			metrics.CallsSaved = 1
		}
		return metrics
	}

	if n := len(questions); n > 1 {
		metrics.CallsSaved = n - 1
		metrics.TokensSaved = (n - 1) * EstimateTokenCount(text)
	}

	return metrics
}
