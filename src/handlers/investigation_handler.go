package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/casefile-ai/casefile/src/config"
	"github.com/casefile-ai/casefile/src/models"
	"github.com/casefile-ai/casefile/src/utils"
)

// InvestigationHandler exposes the dispatch layer and the three pipeline
// stages over HTTP.
type InvestigationHandler struct {
	answerer  models.Answerer
	audio     models.AudioProcessor
	documents models.DocumentAnalyzer
	solver    models.CaseSolver
	store     models.ResultStore
	data      config.DataConfig
}

func NewInvestigationHandler(
	answerer models.Answerer,
	audio models.AudioProcessor,
	documents models.DocumentAnalyzer,
	solver models.CaseSolver,
	store models.ResultStore,
	data config.DataConfig,
) *InvestigationHandler {
	return &InvestigationHandler{
		answerer:  answerer,
		audio:     audio,
		documents: documents,
		solver:    solver,
		store:     store,
		data:      data,
	}
}

// HandleAnswer serves the dispatch layer directly: one batched, cached,
// breaker-guarded call for a text and its questions.
func (h *InvestigationHandler) HandleAnswer(c *gin.Context) {
	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.answerer.Answer(c.Request.Context(), req.Text, req.Questions)

	c.JSON(http.StatusOK, models.AnswerResponse{
		Answers:      result.Answers,
		Sources:      result.Sources,
		ModelUsed:    result.ModelUsed,
		Tier:         result.Tier.String(),
		CacheHit:     result.CacheHit,
		Degraded:     result.Degraded,
		Attempts:     result.Attempts,
		Latency:      result.Latency,
		Timestamp:    time.Now(),
		TokenMetrics: utils.CalculateBatchMetrics(req.Text, req.Questions, result),
	})
}

// HandleStage1 transcribes and interrogates the audio directory. All request
// fields are optional; an empty body runs the configured defaults.
func (h *InvestigationHandler) HandleStage1(c *gin.Context) {
	var req models.Stage1Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	audioDir := req.AudioDir
	if audioDir == "" {
		audioDir = h.data.AudioDir
	}

	findings, err := h.audio.Process(c.Request.Context(), audioDir, req.Questions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage 1 failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stage":    "stage1",
		"count":    len(findings),
		"findings": findings,
	})
}

func (h *InvestigationHandler) HandleStage2(c *gin.Context) {
	var req models.Stage2Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	documentsDir := req.DocumentsDir
	if documentsDir == "" {
		documentsDir = h.data.DocumentsDir
	}

	extractions, err := h.documents.Analyze(c.Request.Context(), documentsDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage 2 failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stage":       "stage2",
		"count":       len(extractions),
		"extractions": extractions,
	})
}

func (h *InvestigationHandler) HandleStage3(c *gin.Context) {
	var req models.Stage3Request
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	caseDir := req.CaseDir
	if caseDir == "" {
		caseDir = h.data.CaseDir
	}

	verdict, err := h.solver.Solve(c.Request.Context(), caseDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage 3 failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, verdict)
}

// HandleRunAll executes the full pipeline against the configured data
// directories and persists a run report.
func (h *InvestigationHandler) HandleRunAll(c *gin.Context) {
	started := time.Now()
	runID := "run_" + uuid.New().String()
	ctx := c.Request.Context()

	findings, err := h.audio.Process(ctx, h.data.AudioDir, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage 1 failed", "details": err.Error()})
		return
	}

	extractions, err := h.documents.Analyze(ctx, h.data.DocumentsDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage 2 failed", "details": err.Error()})
		return
	}

	verdict, err := h.solver.Solve(ctx, h.data.CaseDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stage 3 failed", "details": err.Error()})
		return
	}

	report := models.RunReport{
		RunID:     runID,
		Stage1:    findings,
		Stage2:    extractions,
		Stage3:    verdict,
		StartedAt: started,
		Duration:  time.Since(started),
	}

	if err := h.store.SaveRun(ctx, runID, report); err != nil {
		log.Printf("Failed to save run report %s: %v", runID, err)
	}

	c.JSON(http.StatusOK, report)
}

func (h *InvestigationHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}
