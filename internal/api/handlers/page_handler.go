// internal/api/handlers/page_handler.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/planwise/ibp-backend/internal/web"
)

// PageHandler dispatches a resolved navigation path to the matching view's
// own data fetch. Each page is one synchronous computation; there is no state
// carried between views.
type PageHandler struct {
	products *ProductHandler
	forecast *ForecastHandler
	planning *PlanningHandler
}

func NewPageHandler(products *ProductHandler, forecast *ForecastHandler, planning *PlanningHandler) *PageHandler {
	return &PageHandler{
		products: products,
		forecast: forecast,
		planning: planning,
	}
}

// Show resolves the request path against the page table and renders that
// page's data. Unmatched paths render the not-found page, never an error.
func (h *PageHandler) Show(c *gin.Context) {
	page := web.Resolve(c.Request.URL.Path)
	c.Header("X-Page", string(page))

	switch page {
	case web.PageHome:
		c.JSON(http.StatusOK, gin.H{
			"page":  page,
			"title": "Integrated Business Planning",
			"pages": web.Paths(),
		})
	case web.PageProducts:
		h.products.List(c)
	case web.PageHistory:
		c.JSON(http.StatusOK, gin.H{
			"page":             page,
			"upload_endpoint":  "/api/v1/history/upload",
			"required_columns": []string{"product_code", "period", "qty"},
			"accepted_formats": []string{".csv", ".xlsx"},
		})
	case web.PageForecast:
		h.showForecast(c)
	case web.PageInventory:
		h.planning.KPIs(c)
	case web.PageScenarios:
		h.planning.Scenarios(c)
	case web.PagePortfolio:
		h.planning.Portfolio(c)
	case web.PageApproval:
		h.planning.ApprovalView(c)
	default:
		c.JSON(http.StatusNotFound, gin.H{"page": web.PageNotFound, "error": "page not found"})
	}
}

// showForecast runs the evaluator when a product is selected; without a
// selection it lists the available models.
func (h *PageHandler) showForecast(c *gin.Context) {
	code := c.Query("product")
	if code == "" {
		h.forecast.Models(c)
		return
	}
	c.Params = append(c.Params, gin.Param{Key: "code", Value: code})
	h.forecast.Forecast(c)
}
