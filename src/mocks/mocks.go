package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/casefile-ai/casefile/src/models"
)

// MockAnswerer implements models.Answerer
type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, text string, questions []string) *models.Result {
	args := m.Called(ctx, text, questions)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.Result)
}

// MockCompletionClient implements models.CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, profile models.ModelProfile, prompt string) (string, error) {
	args := m.Called(ctx, profile, prompt)
	return args.String(0), args.Error(1)
}

// MockTranscriber implements models.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)
	return args.String(0), args.Error(1)
}

// MockAnswerCache implements models.AnswerCache
type MockAnswerCache struct {
	mock.Mock
}

func (m *MockAnswerCache) Get(ctx context.Context, fingerprint string) (map[string]string, error) {
	args := m.Called(ctx, fingerprint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockAnswerCache) Set(ctx context.Context, fingerprint string, answers map[string]string) error {
	args := m.Called(ctx, fingerprint, answers)
	return args.Error(0)
}

func (m *MockAnswerCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockAudioProcessor implements models.AudioProcessor
type MockAudioProcessor struct {
	mock.Mock
}

func (m *MockAudioProcessor) Process(ctx context.Context, audioDir string, questions []string) ([]models.AudioFinding, error) {
	args := m.Called(ctx, audioDir, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AudioFinding), args.Error(1)
}

// MockDocumentAnalyzer implements models.DocumentAnalyzer
type MockDocumentAnalyzer struct {
	mock.Mock
}

func (m *MockDocumentAnalyzer) Analyze(ctx context.Context, documentsDir string) ([]models.DossierExtraction, error) {
	args := m.Called(ctx, documentsDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DossierExtraction), args.Error(1)
}

// MockCaseSolver implements models.CaseSolver
type MockCaseSolver struct {
	mock.Mock
}

func (m *MockCaseSolver) Solve(ctx context.Context, caseDir string) (*models.CaseVerdict, error) {
	args := m.Called(ctx, caseDir)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CaseVerdict), args.Error(1)
}

// MockResultStore implements models.ResultStore
type MockResultStore struct {
	mock.Mock
}

func (m *MockResultStore) SaveStage(ctx context.Context, stage string, payload any) error {
	args := m.Called(ctx, stage, payload)
	return args.Error(0)
}

func (m *MockResultStore) LoadStage(ctx context.Context, stage string, into any) error {
	args := m.Called(ctx, stage, into)
	return args.Error(0)
}

func (m *MockResultStore) SaveRun(ctx context.Context, runID string, report any) error {
	args := m.Called(ctx, runID, report)
	return args.Error(0)
}

func (m *MockResultStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
