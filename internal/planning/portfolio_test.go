package planning

import (
	"testing"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func TestSummarize(t *testing.T) {
	rows := []domain.KPIRow{
		{ProductCode: "A1", ServiceLevel: 100, InventoryTurns: 6, InventoryValue: decimal.NewFromFloat(200)},
		{ProductCode: "C3", ServiceLevel: 80, InventoryTurns: 2, InventoryValue: decimal.NewFromFloat(312.5)},
	}

	summary := Summarize(3, rows, 510)

	if summary.Products != 3 {
		t.Errorf("products = %d, want 3", summary.Products)
	}
	if summary.ProductsWithHistory != 2 {
		t.Errorf("products with history = %d, want 2", summary.ProductsWithHistory)
	}
	if !summary.TotalInventoryValue.Equal(decimal.NewFromFloat(512.5)) {
		t.Errorf("total inventory value = %v, want 512.5", summary.TotalInventoryValue)
	}
	if !almostEqual(summary.AvgServiceLevel, 90) {
		t.Errorf("avg service level = %v, want 90", summary.AvgServiceLevel)
	}
	if !almostEqual(summary.AvgInventoryTurns, 4) {
		t.Errorf("avg inventory turns = %v, want 4", summary.AvgInventoryTurns)
	}
	if !almostEqual(summary.TotalAnnualDemand, 510) {
		t.Errorf("total annual demand = %v, want 510", summary.TotalAnnualDemand)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(2, nil, 0)

	if summary.ProductsWithHistory != 0 {
		t.Errorf("products with history = %d, want 0", summary.ProductsWithHistory)
	}
	if !summary.TotalInventoryValue.Equal(decimal.Zero) {
		t.Errorf("total inventory value = %v, want 0", summary.TotalInventoryValue)
	}
	if summary.AvgServiceLevel != 0 || summary.AvgInventoryTurns != 0 {
		t.Errorf("averages should stay zero with no rows: %+v", summary)
	}
}
