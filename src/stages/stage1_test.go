package stages

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/casefile-ai/casefile/src/mocks"
	"github.com/casefile-ai/casefile/src/models"
)

// scriptedAnswerer is a deterministic stand-in for the dispatcher. It records
// what it was asked and answers every question.
type scriptedAnswerer struct {
	texts     []string
	questions [][]string
	answer    func(text string, questions []string) *models.Result
}

func (s *scriptedAnswerer) Answer(_ context.Context, text string, questions []string) *models.Result {
	s.texts = append(s.texts, text)
	s.questions = append(s.questions, questions)

	if s.answer != nil {
		return s.answer(text, questions)
	}

	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		answers[q] = "answer to " + q
	}
	return &models.Result{Answers: answers}
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestAudioPipeline_ProcessesEveryRecording(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a_interview.mp3"), "audio")
	writeTestFile(t, filepath.Join(dir, "b_patrol.wav"), "audio")
	writeTestFile(t, filepath.Join(dir, "notes.txt"), "not audio")

	transcriber := new(mocks.MockTranscriber)
	transcriber.On("Transcribe", mock.Anything, filepath.Join(dir, "a_interview.mp3")).Return("interview transcript", nil)
	transcriber.On("Transcribe", mock.Anything, filepath.Join(dir, "b_patrol.wav")).Return("patrol transcript", nil)

	store := new(mocks.MockResultStore)
	store.On("SaveStage", mock.Anything, "stage1", mock.Anything).Return(nil)

	answerer := &scriptedAnswerer{}
	pipeline := NewAudioPipeline(transcriber, answerer, store)

	findings, err := pipeline.Process(context.Background(), dir, []string{"Who is mentioned?"})

	require.NoError(t, err)
	require.Len(t, findings, 2, "Only audio files should be processed")
	assert.Equal(t, "a_interview.mp3", findings[0].AudioFile)
	assert.Equal(t, "interview transcript", findings[0].Transcript)
	assert.Equal(t, "answer to Who is mentioned?", findings[0].Answers["Who is mentioned?"])
	assert.Equal(t, "b_patrol.wav", findings[1].AudioFile)
	transcriber.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestAudioPipeline_UsesDefaultQuestions(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "recording.mp3"), "audio")

	transcriber := new(mocks.MockTranscriber)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return("transcript", nil)
	store := new(mocks.MockResultStore)
	store.On("SaveStage", mock.Anything, "stage1", mock.Anything).Return(nil)

	answerer := &scriptedAnswerer{}
	pipeline := NewAudioPipeline(transcriber, answerer, store)

	_, err := pipeline.Process(context.Background(), dir, nil)

	require.NoError(t, err)
	require.Len(t, answerer.questions, 1)
	assert.Equal(t, DefaultQuestions, answerer.questions[0], "Empty question list should fall back to the standing set")
}

func TestAudioPipeline_SkipsFailedTranscriptions(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "broken.mp3"), "audio")
	writeTestFile(t, filepath.Join(dir, "working.mp3"), "audio")

	transcriber := new(mocks.MockTranscriber)
	transcriber.On("Transcribe", mock.Anything, filepath.Join(dir, "broken.mp3")).Return("", errors.New("no transcription available"))
	transcriber.On("Transcribe", mock.Anything, filepath.Join(dir, "working.mp3")).Return("good transcript", nil)

	store := new(mocks.MockResultStore)
	store.On("SaveStage", mock.Anything, "stage1", mock.Anything).Return(nil)

	pipeline := NewAudioPipeline(transcriber, &scriptedAnswerer{}, store)

	findings, err := pipeline.Process(context.Background(), dir, []string{"Who?"})

	require.NoError(t, err)
	require.Len(t, findings, 1, "Untranscribable recordings should be skipped, not fatal")
	assert.Equal(t, "working.mp3", findings[0].AudioFile)
}

func TestAudioPipeline_EmptyDirectory(t *testing.T) {
	pipeline := NewAudioPipeline(new(mocks.MockTranscriber), &scriptedAnswerer{}, new(mocks.MockResultStore))

	_, err := pipeline.Process(context.Background(), t.TempDir(), nil)

	assert.ErrorContains(t, err, "no audio files")
}

func TestAudioPipeline_PropagatesDegradedFlag(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "recording.mp3"), "audio")

	transcriber := new(mocks.MockTranscriber)
	transcriber.On("Transcribe", mock.Anything, mock.Anything).Return("transcript", nil)
	store := new(mocks.MockResultStore)
	store.On("SaveStage", mock.Anything, "stage1", mock.Anything).Return(nil)

	answerer := &scriptedAnswerer{answer: func(_ string, questions []string) *models.Result {
		return &models.Result{
			Answers:  map[string]string{questions[0]: "Unknown person"},
			Degraded: true,
		}
	}}
	pipeline := NewAudioPipeline(transcriber, answerer, store)

	findings, err := pipeline.Process(context.Background(), dir, []string{"Who?"})

	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.True(t, findings[0].Degraded, "Findings should carry the answer set's provenance")
}
