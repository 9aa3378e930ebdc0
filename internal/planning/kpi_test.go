package planning

import (
	"errors"
	"math"
	"testing"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/shopspring/decimal"
)

func testProduct(code string, opening, capacity, cost float64) domain.Product {
	return domain.Product{
		Code:             code,
		Name:             "Test " + code,
		OpeningInventory: opening,
		MonthlyCapacity:  capacity,
		UnitCost:         decimal.NewFromFloat(cost),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeWorkedExample(t *testing.T) {
	// Product A1 with history [40, 50, 60].
	calc := NewCalculator(1.65)
	p := testProduct("A1", 100, 50, 2.0)

	m, err := calc.Compute(p, []float64{40, 50, 60})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	if !almostEqual(m.AverageDemand, 50) {
		t.Errorf("average demand = %v, want 50", m.AverageDemand)
	}
	if !almostEqual(m.EndingInventory, 100) {
		t.Errorf("ending inventory = %v, want 100", m.EndingInventory)
	}
	if !almostEqual(m.InventoryTurns, 6.0) {
		t.Errorf("inventory turns = %v, want 6.0", m.InventoryTurns)
	}
	if !m.InventoryValue.Equal(decimal.NewFromFloat(200)) {
		t.Errorf("inventory value = %v, want 200", m.InventoryValue)
	}
	// Sample stddev of [40,50,60] is 10, so safety stock is 16.5.
	if !almostEqual(m.SafetyStock, 16.5) {
		t.Errorf("safety stock = %v, want 16.5", m.SafetyStock)
	}
	if !almostEqual(m.ServiceLevel, 100) {
		t.Errorf("service level = %v, want 100", m.ServiceLevel)
	}
	// Annual demand 150 against 50*12 capacity.
	if !almostEqual(m.CapacityUtilization, 25) {
		t.Errorf("capacity utilization = %v, want 25", m.CapacityUtilization)
	}
}

func TestComputeZeroOpeningInventory(t *testing.T) {
	calc := NewCalculator(1.65)
	p := testProduct("Z0", 0, 100, 1.0)

	m, err := calc.Compute(p, []float64{10, 20, 30})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	// Denominator floors at 1, so turns stay finite.
	if math.IsInf(m.InventoryTurns, 0) || math.IsNaN(m.InventoryTurns) {
		t.Fatalf("inventory turns not finite: %v", m.InventoryTurns)
	}
	if !almostEqual(m.InventoryTurns, 20*12) {
		t.Errorf("inventory turns = %v, want %v", m.InventoryTurns, 20.0*12)
	}
}

func TestComputeProperties(t *testing.T) {
	calc := NewCalculator(1.65)

	testCases := []struct {
		name       string
		quantities []float64
	}{
		{"steady", []float64{50, 50, 50, 50}},
		{"volatile", []float64{5, 95, 10, 80}},
		{"single observation", []float64{42}},
		{"all zero", []float64{0, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := testProduct("P", 30, 60, 1.5)
			m, err := calc.Compute(p, tc.quantities)
			if err != nil {
				t.Fatalf("Compute returned error: %v", err)
			}

			if m.SafetyStock < 0 {
				t.Errorf("safety stock %v is negative", m.SafetyStock)
			}

			var sum float64
			for _, q := range tc.quantities {
				sum += q
			}
			if !almostEqual(m.AverageDemand, sum/float64(len(tc.quantities))) {
				t.Errorf("average demand = %v, want series mean", m.AverageDemand)
			}
			if m.ServiceLevel < 0 || m.ServiceLevel > 100 {
				t.Errorf("service level %v outside [0, 100]", m.ServiceLevel)
			}
		})
	}
}

func TestComputeNoHistory(t *testing.T) {
	calc := NewCalculator(1.65)
	_, err := calc.Compute(testProduct("B2", 10, 10, 1.0), nil)

	var noHistory *domain.NoHistoryError
	if !errors.As(err, &noHistory) {
		t.Fatalf("expected NoHistoryError, got %v", err)
	}
	if noHistory.ProductCode != "B2" {
		t.Errorf("error product code = %q, want B2", noHistory.ProductCode)
	}
}

func TestServiceLevel(t *testing.T) {
	testCases := []struct {
		name     string
		capacity float64
		demand   float64
		want     float64
	}{
		{"capacity covers demand", 50, 50, 100},
		{"capacity exceeds demand", 50, 45, 100},
		{"capacity short", 50, 100, 50},
		{"zero demand", 50, 0, 100},
		{"zero capacity", 0, 10, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ServiceLevel(tc.capacity, tc.demand); !almostEqual(got, tc.want) {
				t.Errorf("ServiceLevel(%v, %v) = %v, want %v", tc.capacity, tc.demand, got, tc.want)
			}
		})
	}
}

func TestRowRounding(t *testing.T) {
	calc := NewCalculator(1.65)
	p := testProduct("R1", 7, 9, 0.333)

	m, err := calc.Compute(p, []float64{1, 2, 4})
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}

	row := m.Row(p)
	for name, v := range map[string]float64{
		"average_demand":       row.AverageDemand,
		"safety_stock":         row.SafetyStock,
		"ending_inventory":     row.EndingInventory,
		"inventory_turns":      row.InventoryTurns,
		"service_level":        row.ServiceLevel,
		"capacity_utilization": row.CapacityUtilization,
	} {
		if !almostEqual(v*100, math.Round(v*100)) {
			t.Errorf("%s = %v not rounded to 2 decimals", name, v)
		}
	}
	if row.InventoryValue.Exponent() < -2 {
		t.Errorf("inventory value %v not rounded to 2 decimals", row.InventoryValue)
	}
}
