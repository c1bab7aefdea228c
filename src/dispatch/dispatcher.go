package dispatch

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/casefile-ai/casefile/src/models"
	"github.com/casefile-ai/casefile/src/resilience"
	"github.com/casefile-ai/casefile/src/router"
)

// Dispatcher composes the dispatch layer: cache lookup, content
// classification, model routing, the retried remote call, batched parsing,
// fallback backfill and cache population. Answer never fails: every failure
// mode degrades to a complete, locally synthesized answer set.
type Dispatcher struct {
	cache      models.AnswerCache
	classifier *router.ContentClassifier
	profiles   *router.ModelRouter
	client     models.CompletionClient
	executor   *resilience.Executor
	synth      *Synthesizer

	flight singleflight.Group
}

func NewDispatcher(
	cache models.AnswerCache,
	classifier *router.ContentClassifier,
	profiles *router.ModelRouter,
	client models.CompletionClient,
	executor *resilience.Executor,
	synth *Synthesizer,
) *Dispatcher {
	return &Dispatcher{
		cache:      cache,
		classifier: classifier,
		profiles:   profiles,
		client:     client,
		executor:   executor,
		synth:      synth,
	}
}

// Answer returns exactly one answer per distinct question. Cache hits are
// honored even while the breaker is open; degraded answer sets are never
// cached. Concurrent calls for the same fingerprint share a single remote
// call.
func (d *Dispatcher) Answer(ctx context.Context, text string, questions []string) *models.Result {
	start := time.Now()

	if len(questions) == 0 {
		return &models.Result{
			Answers: map[string]string{},
			Sources: map[string]models.AnswerSource{},
			Latency: time.Since(start),
		}
	}

	fingerprint := Fingerprint(text, questions)

	if cached, err := d.cache.Get(ctx, fingerprint); err == nil && cached != nil {
		return cachedResult(cached, start)
	}

	v, _, _ := d.flight.Do(fingerprint, func() (any, error) {
		return d.dispatch(ctx, fingerprint, text, questions), nil
	})

	// Copy the shared struct before stamping per-caller latency. The answer
	// maps stay shared and are treated as read-only from here on.
	result := *(v.(*models.Result))
	result.Latency = time.Since(start)
	return &result
}

func (d *Dispatcher) dispatch(ctx context.Context, fingerprint, text string, questions []string) *models.Result {
	// Re-check under the flight: a concurrent caller may have populated the
	// cache while this one waited for the lock.
	if cached, err := d.cache.Get(ctx, fingerprint); err == nil && cached != nil {
		return cachedResult(cached, time.Now())
	}

	tier := d.classifier.Classify(text)
	profile := d.profiles.Route(tier)

	prompt, err := BuildBatchPrompt(text, questions)
	if err != nil {
		log.Printf("Prompt rendering failed, degrading: %v", err)
		return d.degraded(text, questions, tier, 0)
	}

	outcome, err := d.executor.Execute(ctx, func(ctx context.Context) (string, error) {
		return d.client.Complete(ctx, profile, prompt)
	})
	if err != nil {
		log.Printf("Dispatch degraded for %s (%s, %d attempts): %v",
			shortFingerprint(fingerprint), profile.Name, outcome.Attempts, err)
		return d.degraded(text, questions, tier, outcome.Attempts)
	}

	answers, sources := d.backfill(text, questions, ParseBatched(outcome.Text, questions))

	if err := d.cache.Set(ctx, fingerprint, answers); err != nil {
		log.Printf("Failed to cache answers for %s: %v", shortFingerprint(fingerprint), err)
	}

	return &models.Result{
		Answers:   answers,
		Sources:   sources,
		ModelUsed: profile.Name,
		Tier:      tier,
		Attempts:  outcome.Attempts,
	}
}

// backfill guarantees total coverage: any question the parse missed or left
// empty gets a synthesized answer tagged as fallback.
func (d *Dispatcher) backfill(text string, questions []string, parsed map[string]string) (map[string]string, map[string]models.AnswerSource) {
	answers := make(map[string]string, len(questions))
	sources := make(map[string]models.AnswerSource, len(questions))
	for _, q := range questions {
		if a, ok := parsed[q]; ok && a != "" {
			answers[q] = a
			sources[q] = models.SourceModel
			continue
		}
		answers[q] = d.synth.Synthesize(text, q)
		sources[q] = models.SourceFallback
	}
	return answers, sources
}

func (d *Dispatcher) degraded(text string, questions []string, tier models.Tier, attempts int) *models.Result {
	answers := make(map[string]string, len(questions))
	sources := make(map[string]models.AnswerSource, len(questions))
	for _, q := range questions {
		answers[q] = d.synth.Synthesize(text, q)
		sources[q] = models.SourceFallback
	}
	return &models.Result{
		Answers:  answers,
		Sources:  sources,
		Tier:     tier,
		Degraded: true,
		Attempts: attempts,
	}
}

func cachedResult(answers map[string]string, start time.Time) *models.Result {
	sources := make(map[string]models.AnswerSource, len(answers))
	for q := range answers {
		sources[q] = models.SourceCache
	}
	return &models.Result{
		Answers:  answers,
		Sources:  sources,
		CacheHit: true,
		Latency:  time.Since(start),
	}
}

func shortFingerprint(fp string) string {
	if len(fp) > 8 {
		return fp[:8]
	}
	return fp
}
