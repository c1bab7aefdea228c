package inference

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casefile-ai/casefile/src/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWhisperTranscriber_UsesEndpointResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"text":"Dr. Chen entered the lab at 11:47 PM."}`)
	}))
	defer server.Close()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "lab_recording.mp3")
	writeFile(t, audioPath, "fake audio bytes")

	transcriber := NewWhisperTranscriber(&config.GroqConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		WhisperModel: "whisper-large-v3",
	})

	text, err := transcriber.Transcribe(context.Background(), audioPath)

	require.NoError(t, err)
	assert.Equal(t, "Dr. Chen entered the lab at 11:47 PM.", text)
}

func TestWhisperTranscriber_FallsBackToTranscriptFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model unavailable"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "lab_recording.mp3")
	writeFile(t, audioPath, "fake audio bytes")
	writeFile(t, filepath.Join(dir, "lab_recording_transcript.txt"), "Security footage narration.\n")

	transcriber := NewWhisperTranscriber(&config.GroqConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		WhisperModel: "whisper-large-v3",
	})

	text, err := transcriber.Transcribe(context.Background(), audioPath)

	require.NoError(t, err)
	assert.Equal(t, "Security footage narration.", text, "Transcript file content should be trimmed")
}

func TestWhisperTranscriber_ErrorWhenNothingAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"model unavailable"}}`, http.StatusServiceUnavailable)
	}))
	defer server.Close()

	dir := t.TempDir()
	audioPath := filepath.Join(dir, "lab_recording.mp3")
	writeFile(t, audioPath, "fake audio bytes")

	transcriber := NewWhisperTranscriber(&config.GroqConfig{
		APIKey:       "test-key",
		BaseURL:      server.URL,
		WhisperModel: "whisper-large-v3",
	})

	_, err := transcriber.Transcribe(context.Background(), audioPath)

	assert.Error(t, err, "Missing endpoint and missing transcript file should surface an error")
}

func TestReadTranscriptFile_PairsByBaseName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "evidence_transcript.txt"), "spoken words")

	text, err := readTranscriptFile(filepath.Join(dir, "evidence.wav"))

	require.NoError(t, err)
	assert.Equal(t, "spoken words", text)
}
