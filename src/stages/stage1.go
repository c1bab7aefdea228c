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

// DefaultQuestions is the standing interrogation applied to every recording.
var DefaultQuestions = []string{
	"Who is mentioned in this recording?",
	"What locations are mentioned?",
	"What time or date is mentioned?",
	"What suspicious activity is described?",
	"What evidence is discussed?",
}

var audioExtensions = map[string]bool{
	".mp3": true,
	".wav": true,
	".m4a": true,
}

// AudioPipeline transcribes every recording in a directory and runs the
// standing questions against each transcript, one batched call per file.
type AudioPipeline struct {
	transcriber models.Transcriber
	answerer    models.Answerer
	store       models.ResultStore
}

func NewAudioPipeline(transcriber models.Transcriber, answerer models.Answerer, store models.ResultStore) *AudioPipeline {
	return &AudioPipeline{
		transcriber: transcriber,
		answerer:    answerer,
		store:       store,
	}
}

func (p *AudioPipeline) Process(ctx context.Context, audioDir string, questions []string) ([]models.AudioFinding, error) {
	if len(questions) == 0 {
		questions = DefaultQuestions
	}

	paths, err := listAudioFiles(audioDir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no audio files found in %s", audioDir)
	}

	findings := make([]models.AudioFinding, 0, len(paths))
	for _, path := range paths {
		transcript, err := p.transcriber.Transcribe(ctx, path)
		if err != nil {
			log.Printf("Skipping %s: %v", filepath.Base(path), err)
			continue
		}

		result := p.answerer.Answer(ctx, transcript, questions)
		findings = append(findings, models.AudioFinding{
			AudioFile:  filepath.Base(path),
			Transcript: transcript,
			Answers:    result.Answers,
			Degraded:   result.Degraded,
		})
	}

	if err := p.store.SaveStage(ctx, "stage1", findings); err != nil {
		return findings, fmt.Errorf("failed to persist stage 1 results: %w", err)
	}

	return findings, nil
}

func listAudioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if audioExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	return paths, nil
}
