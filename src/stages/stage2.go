package stages

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/casefile-ai/casefile/src/models"
)

// The three forensic extractions run against every dossier. Each asks for a
// name list so the answers can be split mechanically.
const (
	questionSystemLogs  = "Which personnel accessed system logs? Reply with comma-separated names, or None found."
	questionFinancial   = "Which personnel accessed financial records? Reply with comma-separated names, or None found."
	questionExperiments = "Which personnel conducted unauthorized experiments? Reply with comma-separated names, or None found."
)

var extractionQuestions = []string{
	questionSystemLogs,
	questionFinancial,
	questionExperiments,
}

var documentExtensions = map[string]bool{
	".txt": true,
	".csv": true,
}

// DocumentPipeline runs the forensic extractions against every dossier in a
// directory, one batched call per document.
type DocumentPipeline struct {
	answerer models.Answerer
	store    models.ResultStore
}

func NewDocumentPipeline(answerer models.Answerer, store models.ResultStore) *DocumentPipeline {
	return &DocumentPipeline{
		answerer: answerer,
		store:    store,
	}
}

func (p *DocumentPipeline) Analyze(ctx context.Context, documentsDir string) ([]models.DossierExtraction, error) {
	paths, err := listDocuments(documentsDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no documents found in %s", documentsDir)
	}

	extractions := make([]models.DossierExtraction, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Skipping %s: %v", filepath.Base(path), err)
			continue
		}
		text := string(data)

		result := p.answerer.Answer(ctx, text, extractionQuestions)
		extractions = append(extractions, models.DossierExtraction{
			DossierFile:    filepath.Base(path),
			DocumentLength: len(text),
			Findings: models.ForensicFindings{
				SystemLogAccess:         splitNames(result.Answers[questionSystemLogs]),
				FinancialAccess:         splitNames(result.Answers[questionFinancial]),
				UnauthorizedExperiments: splitNames(result.Answers[questionExperiments]),
			},
			Degraded: result.Degraded,
		})
	}

	if err := p.store.SaveStage(ctx, "stage2", extractions); err != nil {
		return extractions, fmt.Errorf("failed to persist stage 2 results: %w", err)
	}

	return extractions, nil
}

// splitNames turns a comma-separated name answer into a slice. "None found"
// and the not-in-transcript sentinel both mean an empty list.
func splitNames(answer string) []string {
	answer = strings.TrimSpace(answer)
	lowered := strings.ToLower(answer)
	if answer == "" || strings.Contains(lowered, "none found") || strings.Contains(lowered, "not found") {
		return nil
	}

	parts := strings.Split(answer, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}

	return names
}

func listDocuments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read documents directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if documentExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	return paths, nil
}
