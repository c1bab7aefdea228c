package router

import (
	"github.com/casefile-ai/casefile/src/config"
	"github.com/casefile-ai/casefile/src/models"
)

type ModelRouter struct {
	standard  models.ModelProfile
	escalated models.ModelProfile
}

func NewModelRouter(cfg *config.ModelsConfig) *ModelRouter {
	return &ModelRouter{
		standard: models.ModelProfile{
			Name:        cfg.Standard,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		},
		escalated: models.ModelProfile{
			Name:        cfg.Escalated,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		},
	}
}

// Route is a pure lookup. The tiers trade cost for capability; both share the
// same decoding temperature and timeout and can answer every question type.
func (r *ModelRouter) Route(tier models.Tier) models.ModelProfile {
	if tier == models.TierEscalated {
		return r.escalated
	}
	return r.standard
}
