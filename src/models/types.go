package models

import "time"

// Tier classifies input severity and selects which model profile handles it.
type Tier int

const (
	TierStandard Tier = iota
	TierEscalated
)

func (t Tier) String() string {
	if t == TierEscalated {
		return "escalated"
	}
	return "standard"
}

// ModelProfile binds a remote model identifier to its decoding settings.
// Both tiers share temperature and timeout; only capability and cost differ.
type ModelProfile struct {
	Name        string        `json:"name"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Timeout     time.Duration `json:"timeout"`
}

// FailureKind is the classification an ErrorClassifier assigns to a failed
// remote call.
type FailureKind int

const (
	FailureUnknown FailureKind = iota
	FailureRateLimited
	FailureQuotaExhausted
)

func (k FailureKind) String() string {
	switch k {
	case FailureRateLimited:
		return "rate_limited"
	case FailureQuotaExhausted:
		return "quota_exhausted"
	default:
		return "unknown"
	}
}

// AnswerSource tags where an answer came from, so callers can tell an
// authoritative model answer from a locally synthesized one.
type AnswerSource string

const (
	SourceModel    AnswerSource = "model"
	SourceFallback AnswerSource = "fallback"
	SourceCache    AnswerSource = "cache"
)

// Result is the dispatcher's answer set: exactly one entry per input question,
// in every failure mode.
type Result struct {
	Answers   map[string]string       `json:"answers"`
	Sources   map[string]AnswerSource `json:"sources"`
	ModelUsed string                  `json:"model_used,omitempty"`
	Tier      Tier                    `json:"-"`
	CacheHit  bool                    `json:"cache_hit"`
	Degraded  bool                    `json:"degraded"`
	Attempts  int                     `json:"attempts"`
	Latency   time.Duration           `json:"latency"`
}

type TokenMetrics struct {
	PromptTokens int    `json:"prompt_tokens"`
	AnswerTokens int    `json:"answer_tokens"`
	TotalTokens  int    `json:"total_tokens"`
	CallsSaved   int    `json:"calls_saved"`
	TokensSaved  int    `json:"tokens_saved"`
	Model        string `json:"model,omitempty"`
}

type AnswerRequest struct {
	Text      string   `json:"text" binding:"required"`
	Questions []string `json:"questions" binding:"required"`
}

type AnswerResponse struct {
	Answers      map[string]string       `json:"answers"`
	Sources      map[string]AnswerSource `json:"sources"`
	ModelUsed    string                  `json:"model_used,omitempty"`
	Tier         string                  `json:"tier"`
	CacheHit     bool                    `json:"cache_hit"`
	Degraded     bool                    `json:"degraded"`
	Attempts     int                     `json:"attempts"`
	Latency      time.Duration           `json:"latency"`
	Timestamp    time.Time               `json:"timestamp"`
	TokenMetrics *TokenMetrics           `json:"token_metrics,omitempty"`
}

type Stage1Request struct {
	AudioDir  string   `json:"audio_dir,omitempty"`
	Questions []string `json:"questions,omitempty"`
}

type Stage2Request struct {
	DocumentsDir string `json:"documents_dir,omitempty"`
}

type Stage3Request struct {
	CaseDir string `json:"case_dir,omitempty"`
}

type FixturesRequest struct {
	Scenario  string `json:"scenario,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
}

// Stage payloads persisted between pipeline stages.

type AudioFinding struct {
	AudioFile  string            `json:"audio_file"`
	Transcript string            `json:"transcript"`
	Answers    map[string]string `json:"answers"`
	Degraded   bool              `json:"degraded,omitempty"`
}

type ForensicFindings struct {
	SystemLogAccess         []string `json:"system_log_access"`
	FinancialAccess         []string `json:"financial_access"`
	UnauthorizedExperiments []string `json:"unauthorized_experiments"`
}

type DossierExtraction struct {
	DossierFile    string           `json:"dossier_file"`
	DocumentLength int              `json:"document_length"`
	Findings       ForensicFindings `json:"findings"`
	Degraded       bool             `json:"degraded,omitempty"`
}

type ReasoningStep struct {
	Name     string `json:"name"`
	Analysis string `json:"analysis"`
	Degraded bool   `json:"degraded,omitempty"`
}

type CaseVerdict struct {
	CaseID             string          `json:"case_id"`
	EvidenceSummary    string          `json:"evidence_summary"`
	Steps              []ReasoningStep `json:"steps"`
	FinalDetermination string          `json:"final_determination"`
	SolvedAt           time.Time       `json:"solved_at"`
}

type RunReport struct {
	RunID     string              `json:"run_id"`
	Stage1    []AudioFinding      `json:"stage1"`
	Stage2    []DossierExtraction `json:"stage2"`
	Stage3    *CaseVerdict        `json:"stage3,omitempty"`
	StartedAt time.Time           `json:"started_at"`
	Duration  time.Duration       `json:"duration"`
}
