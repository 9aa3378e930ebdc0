// internal/planning/scenario.go
package planning

import "github.com/planwise/ibp-backend/internal/domain"

// Scenario is one what-if demand adjustment.
type Scenario struct {
	Label      string
	Multiplier float64
}

// Scenarios builds the configured multiplier set around the given spread:
// baseline, optimistic and pessimistic.
func Scenarios(spread float64) []Scenario {
	if spread <= 0 {
		spread = 0.10
	}
	return []Scenario{
		{Label: "Base", Multiplier: 1.0},
		{Label: "Optimistic", Multiplier: 1.0 + spread},
		{Label: "Pessimistic", Multiplier: 1.0 - spread},
	}
}

// ScenarioGenerator re-runs the demand-sensitive KPIs under each multiplier.
type ScenarioGenerator struct {
	calc      *Calculator
	scenarios []Scenario
}

func NewScenarioGenerator(calc *Calculator, scenarios []Scenario) *ScenarioGenerator {
	return &ScenarioGenerator{calc: calc, scenarios: scenarios}
}

// Rows yields one row per scenario for a product with history. The Base row
// reproduces the unscaled service level exactly.
func (g *ScenarioGenerator) Rows(p domain.Product, quantities []float64) ([]domain.ScenarioRow, error) {
	metrics, err := g.calc.Compute(p, quantities)
	if err != nil {
		return nil, err
	}

	rows := make([]domain.ScenarioRow, 0, len(g.scenarios))
	for _, sc := range g.scenarios {
		demand := metrics.AverageDemand * sc.Multiplier
		rows = append(rows, domain.ScenarioRow{
			ProductCode:    p.Code,
			ProductName:    p.Name,
			Scenario:       sc.Label,
			Multiplier:     sc.Multiplier,
			ScenarioDemand: round2(demand),
			ServiceLevel:   round2(ServiceLevel(p.MonthlyCapacity, demand)),
			InventoryValue: metrics.InventoryValue.Round(2),
		})
	}

	return rows, nil
}
