package stages

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/casefile-ai/casefile/src/models"
)

const transcriptExcerptLimit = 500

// reasoningSteps run in order, each feeding its analysis into the next
// step's context. The last step is the verdict.
var reasoningSteps = []struct {
	name     string
	question string
}{
	{"suspect_identification", "Based on the evidence, who are the primary suspects and why?"},
	{"motive_analysis", "What motive does each suspect have?"},
	{"opportunity_assessment", "Which suspects had the opportunity to commit the act?"},
	{"means_evaluation", "Which suspects had the means to carry it out?"},
	{"final_determination", "Weighing motive, opportunity and means, who is the most likely culprit and why?"},
}

// ReasoningPipeline aggregates the findings of the earlier stages with any
// additional case documents and walks the reasoning steps to a verdict.
type ReasoningPipeline struct {
	answerer models.Answerer
	store    models.ResultStore
}

func NewReasoningPipeline(answerer models.Answerer, store models.ResultStore) *ReasoningPipeline {
	return &ReasoningPipeline{
		answerer: answerer,
		store:    store,
	}
}

func (p *ReasoningPipeline) Solve(ctx context.Context, caseDir string) (*models.CaseVerdict, error) {
	var findings []models.AudioFinding
	if err := p.store.LoadStage(ctx, "stage1", &findings); err != nil {
		return nil, fmt.Errorf("stage 1 must run before stage 3: %w", err)
	}

	var extractions []models.DossierExtraction
	if err := p.store.LoadStage(ctx, "stage2", &extractions); err != nil {
		return nil, fmt.Errorf("stage 2 must run before stage 3: %w", err)
	}

	evidence := aggregateEvidence(findings, extractions, caseDir)

	verdict := &models.CaseVerdict{
		CaseID:          "case_" + uuid.New().String(),
		EvidenceSummary: evidence,
	}

	stepContext := evidence
	for _, step := range reasoningSteps {
		result := p.answerer.Answer(ctx, stepContext, []string{step.question})
		analysis := result.Answers[step.question]

		verdict.Steps = append(verdict.Steps, models.ReasoningStep{
			Name:     step.name,
			Analysis: analysis,
			Degraded: result.Degraded,
		})

		stepContext += fmt.Sprintf("\n\n[%s]\n%s", step.name, analysis)
	}

	verdict.FinalDetermination = verdict.Steps[len(verdict.Steps)-1].Analysis
	verdict.SolvedAt = time.Now()

	if err := p.store.SaveStage(ctx, "stage3", verdict); err != nil {
		return verdict, fmt.Errorf("failed to persist stage 3 results: %w", err)
	}

	return verdict, nil
}

// aggregateEvidence builds the case file every reasoning step starts from:
// audio findings with transcript excerpts, the forensic extractions and any
// additional case documents on disk.
func aggregateEvidence(findings []models.AudioFinding, extractions []models.DossierExtraction, caseDir string) string {
	var b strings.Builder

	b.WriteString("=== AUDIO EVIDENCE ===\n")
	for _, f := range findings {
		fmt.Fprintf(&b, "[%s]\nTranscript excerpt: %s\n", f.AudioFile, excerpt(f.Transcript))
		for q, a := range f.Answers {
			fmt.Fprintf(&b, "  - %s %s\n", q, a)
		}
	}

	b.WriteString("\n=== DOCUMENT FINDINGS ===\n")
	for _, e := range extractions {
		fmt.Fprintf(&b, "[%s]\n", e.DossierFile)
		fmt.Fprintf(&b, "  - System log access: %s\n", nameList(e.Findings.SystemLogAccess))
		fmt.Fprintf(&b, "  - Financial access: %s\n", nameList(e.Findings.FinancialAccess))
		fmt.Fprintf(&b, "  - Unauthorized experiments: %s\n", nameList(e.Findings.UnauthorizedExperiments))
	}

	if docs := readCaseDocuments(caseDir); docs != "" {
		b.WriteString("\n=== ADDITIONAL CASE DOCUMENTS ===\n")
		b.WriteString(docs)
	}

	return b.String()
}

func excerpt(transcript string) string {
	if len(transcript) > transcriptExcerptLimit {
		return transcript[:transcriptExcerptLimit] + "..."
	}
	return transcript
}

func nameList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

// readCaseDocuments is best-effort: a missing case directory just means no
// supplementary material.
func readCaseDocuments(caseDir string) string {
	if caseDir == "" {
		return ""
	}

	entries, err := os.ReadDir(caseDir)
	if err != nil {
		log.Printf("No additional case documents: %v", err)
		return ""
	}

	var b strings.Builder
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".txt" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(caseDir, entry.Name()))
		if err != nil {
			log.Printf("Skipping case document %s: %v", entry.Name(), err)
			continue
		}
		fmt.Fprintf(&b, "[%s]\n%s\n", entry.Name(), strings.TrimSpace(string(data)))
	}

	return b.String()
}
