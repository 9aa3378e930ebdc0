// internal/planning/kpi.go
package planning

import (
	"math"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"
)

// monthsPerYear annualizes monthly figures. Both it and the exactly-one-year
// assumption behind capacity utilization are placeholder business constants
// pending confirmation with a domain owner.
const monthsPerYear = 12

const defaultSafetyFactor = 1.65 // one-sided 95% service factor

// Calculator derives inventory KPIs from a product and its demand series.
// Computation runs at full precision; rounding happens only when building
// display rows.
type Calculator struct {
	SafetyFactor float64
}

func NewCalculator(safetyFactor float64) *Calculator {
	if safetyFactor <= 0 {
		safetyFactor = defaultSafetyFactor
	}
	return &Calculator{SafetyFactor: safetyFactor}
}

// Metrics holds the full-precision intermediate results.
type Metrics struct {
	AverageDemand       float64
	AnnualDemand        float64
	SafetyStock         float64
	EffectiveProduction float64
	EndingInventory     float64
	InventoryTurns      float64
	ServiceLevel        float64
	CapacityUtilization float64
	InventoryValue      decimal.Decimal
}

// Compute requires at least one observation; products without history carry no
// KPI row at all.
func (c *Calculator) Compute(p domain.Product, quantities []float64) (Metrics, error) {
	if len(quantities) == 0 {
		return Metrics{}, &domain.NoHistoryError{ProductCode: p.Code}
	}

	avg := stat.Mean(quantities, nil)
	sd := 0.0
	if len(quantities) > 1 {
		sd = stat.StdDev(quantities, nil)
	}

	var annual float64
	for _, q := range quantities {
		annual += q
	}

	effective := math.Min(avg, p.MonthlyCapacity)

	m := Metrics{
		AverageDemand:       avg,
		AnnualDemand:        annual,
		SafetyStock:         sd * c.SafetyFactor,
		EffectiveProduction: effective,
		EndingInventory:     p.OpeningInventory + effective - avg,
		// Floor the denominator at 1 so zero opening inventory cannot divide
		// by zero. A documented approximation, not precise annualization.
		InventoryTurns: avg * monthsPerYear / math.Max(p.OpeningInventory, 1),
		ServiceLevel:   ServiceLevel(p.MonthlyCapacity, avg),
		InventoryValue: decimal.NewFromFloat(p.OpeningInventory).Mul(p.UnitCost),
	}

	if p.MonthlyCapacity > 0 {
		m.CapacityUtilization = annual / (p.MonthlyCapacity * monthsPerYear) * 100
	}

	return m, nil
}

// Row rounds the metrics into the displayable per-product KPI row.
func (m Metrics) Row(p domain.Product) domain.KPIRow {
	return domain.KPIRow{
		ProductCode:         p.Code,
		ProductName:         p.Name,
		AverageDemand:       round2(m.AverageDemand),
		SafetyStock:         round2(m.SafetyStock),
		EndingInventory:     round2(m.EndingInventory),
		InventoryTurns:      round2(m.InventoryTurns),
		ServiceLevel:        round2(m.ServiceLevel),
		CapacityUtilization: round2(m.CapacityUtilization),
		InventoryValue:      m.InventoryValue.Round(2),
	}
}

// ServiceLevel is the fraction of demand satisfiable from monthly capacity,
// expressed as a percentage capped at 100. Zero demand is fully served.
func ServiceLevel(capacity, demand float64) float64 {
	if demand <= 0 {
		return 100
	}
	return math.Min(capacity/demand, 1) * 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
