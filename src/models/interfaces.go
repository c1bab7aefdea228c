package models

import (
	"context"
)

// CompletionClient defines the interface for the remote inference call.
type CompletionClient interface {
	Complete(ctx context.Context, profile ModelProfile, prompt string) (string, error)
}

// AnswerCache defines the interface for fingerprint-keyed answer storage.
// Get returns (nil, nil) on a miss.
type AnswerCache interface {
	Get(ctx context.Context, fingerprint string) (map[string]string, error)
	Set(ctx context.Context, fingerprint string, answers map[string]string) error
	Close() error
}

// ErrorClassifier assigns a FailureKind to a failed remote call. Collaborators
// with structured errors can supply their own implementation; the default
// falls back to message-text heuristics.
type ErrorClassifier interface {
	Classify(err error) FailureKind
}

// Transcriber converts an audio file into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Answerer is the dispatcher's caller-facing contract: a complete answer set
// for every question, in every failure mode.
type Answerer interface {
	Answer(ctx context.Context, text string, questions []string) *Result
}

// ResultStore persists stage payloads between pipeline stages.
type ResultStore interface {
	SaveStage(ctx context.Context, stage string, payload any) error
	LoadStage(ctx context.Context, stage string, into any) error
	SaveRun(ctx context.Context, runID string, report any) error
	Close() error
}

// AudioProcessor runs the audio interrogation stage.
type AudioProcessor interface {
	Process(ctx context.Context, audioDir string, questions []string) ([]AudioFinding, error)
}

// DocumentAnalyzer runs the forensic extraction stage.
type DocumentAnalyzer interface {
	Analyze(ctx context.Context, documentsDir string) ([]DossierExtraction, error)
}

// CaseSolver runs the reasoning stage.
type CaseSolver interface {
	Solve(ctx context.Context, caseDir string) (*CaseVerdict, error)
}
