package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrhapile/cf-diagnoser/internal/diagnosis"
	"github.com/mrhapile/cf-diagnoser/pkg/engine"
	"github.com/mrhapile/cf-diagnoser/pkg/types"
)

// SymptomView is a symptom as offered to a user.
type SymptomView struct {
	Code   string  `json:"code"`
	Name   string  `json:"name,omitempty"`
	MB     float64 `json:"mb"`
	MD     float64 `json:"md"`
	BaseCF float64 `json:"base_cf"`
}

type symptomsResponse struct {
	Symptoms         []SymptomView           `json:"symptoms"`
	ConfidenceLabels []types.ConfidenceLabel `json:"confidence_labels"`
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListSymptoms returns the symptoms of the current knowledge base with the
// confidence levels a user can pick from.
func ListSymptoms(svc *diagnosis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		kb := svc.KnowledgeBase()
		views := make([]SymptomView, 0, len(kb.Symptoms))
		for _, s := range kb.Symptoms {
			views = append(views, SymptomView{
				Code:   s.Code,
				Name:   s.Name,
				MB:     s.MB,
				MD:     s.MD,
				BaseCF: s.BaseCF(),
			})
		}
		c.JSON(http.StatusOK, symptomsResponse{
			Symptoms:         views,
			ConfidenceLabels: types.ConfidenceLabels,
		})
	}
}

// HandleInfer runs one inference over the submitted facts.
func HandleInfer(svc *diagnosis.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.DiagnosticContext
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := svc.Diagnose(req)
		if err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, engine.ErrPassLimit) {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
