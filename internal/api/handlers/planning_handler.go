// internal/api/handlers/planning_handler.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/api/middleware"
	"github.com/planwise/ibp-backend/internal/config"
	"github.com/planwise/ibp-backend/internal/service"
	"github.com/rs/zerolog/log"
)

type PlanningHandler struct {
	service *service.PlanningService
}

func NewPlanningHandler(service *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{service: service}
}

// KPIs returns the per-product inventory KPI rows. Products with no history
// are omitted entirely.
func (h *PlanningHandler) KPIs(c *gin.Context) {
	rows, err := h.service.KPIRows(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "total": len(rows)})
}

// Scenarios returns one row per product and demand scenario.
func (h *PlanningHandler) Scenarios(c *gin.Context) {
	rows, err := h.service.ScenarioRows(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "total": len(rows)})
}

// Portfolio returns the rollup across all products with history.
func (h *PlanningHandler) Portfolio(c *gin.Context) {
	summary, err := h.service.Portfolio(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Decide acknowledges a plan approval. The route is gated by the manager role;
// nothing is persisted, the schema carries no approval table.
func (h *PlanningHandler) Decide(c *gin.Context) {
	var payload struct {
		Decision string `json:"decision"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid approval payload"})
		return
	}

	if payload.Decision != "approve" && payload.Decision != "reject" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "decision must be approve or reject"})
		return
	}

	log.Info().
		Str("decision", payload.Decision).
		Str("role", middleware.RoleFrom(c)).
		Msg("plan decision recorded")

	c.JSON(http.StatusOK, gin.H{
		"decision":   payload.Decision,
		"decided_by": middleware.RoleFrom(c),
		"decided_at": time.Now().UTC(),
	})
}

// ApprovalView assembles the approval page: the portfolio rollup, the scenario
// rows under review and whether the configured role may decide.
func (h *PlanningHandler) ApprovalView(c *gin.Context) {
	summary, err := h.service.Portfolio(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	rows, err := h.service.ScenarioRows(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	role := middleware.RoleFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"portfolio":   summary,
		"scenarios":   rows,
		"role":        role,
		"can_approve": role == config.RoleManager,
	})
}
