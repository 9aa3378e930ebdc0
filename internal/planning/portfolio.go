// internal/planning/portfolio.go
package planning

import (
	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize rolls per-product KPI rows up to portfolio level. totalProducts
// counts every product in the master table; rows covers only those with
// history.
func Summarize(totalProducts int, rows []domain.KPIRow, annualDemand float64) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{
		Products:            totalProducts,
		ProductsWithHistory: len(rows),
		TotalInventoryValue: decimal.Zero,
		TotalAnnualDemand:   round2(annualDemand),
	}

	if len(rows) == 0 {
		return summary
	}

	var serviceSum, turnsSum float64
	for _, row := range rows {
		summary.TotalInventoryValue = summary.TotalInventoryValue.Add(row.InventoryValue)
		serviceSum += row.ServiceLevel
		turnsSum += row.InventoryTurns
	}

	summary.TotalInventoryValue = summary.TotalInventoryValue.Round(2)
	summary.AvgServiceLevel = round2(serviceSum / float64(len(rows)))
	summary.AvgInventoryTurns = round2(turnsSum / float64(len(rows)))
	return summary
}
