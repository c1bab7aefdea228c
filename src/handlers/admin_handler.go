package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/casefile-ai/casefile/src/config"
	"github.com/casefile-ai/casefile/src/fixtures"
	"github.com/casefile-ai/casefile/src/models"
	"github.com/casefile-ai/casefile/src/resilience"
)

// AdminHandler exposes operator controls: breaker inspection and reset, and
// fixture generation for demo runs.
type AdminHandler struct {
	breaker *resilience.Breaker
	data    config.DataConfig
}

func NewAdminHandler(breaker *resilience.Breaker, data config.DataConfig) *AdminHandler {
	return &AdminHandler{
		breaker: breaker,
		data:    data,
	}
}

// BreakerStatus reports whether the daily-quota breaker is open.
func (h *AdminHandler) BreakerStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"open":      h.breaker.Tripped(),
		"timestamp": time.Now(),
	})
}

// ResetBreaker closes the breaker once an operator has confirmed the quota
// window rolled over. There is no automatic reset.
func (h *AdminHandler) ResetBreaker(c *gin.Context) {
	h.breaker.Reset()
	log.Printf("Quota breaker reset by operator")

	c.JSON(http.StatusOK, gin.H{
		"open":    false,
		"message": "breaker reset",
	})
}

// GenerateFixtures writes a demo scenario into the data directories.
func (h *AdminHandler) GenerateFixtures(c *gin.Context) {
	var req models.FixturesRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data := h.data
	if req.OutputDir != "" {
		data = config.DataConfig{
			AudioDir:     filepath.Join(req.OutputDir, "dummy_audio"),
			DocumentsDir: filepath.Join(req.OutputDir, "dummy_documents"),
			CaseDir:      filepath.Join(req.OutputDir, "dummy_case"),
		}
	}

	if err := fixtures.Write(data, req.Scenario); err != nil {
		if errors.Is(err, fixtures.ErrUnknownScenario) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "scenarios": fixtures.Scenarios()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Fixture generation failed", "details": err.Error()})
		return
	}

	scenario := req.Scenario
	if scenario == "" {
		scenario = fixtures.ScenarioPoisonedResearcher
	}

	c.JSON(http.StatusOK, gin.H{
		"scenario":      scenario,
		"audio_dir":     data.AudioDir,
		"documents_dir": data.DocumentsDir,
		"case_dir":      data.CaseDir,
	})
}
