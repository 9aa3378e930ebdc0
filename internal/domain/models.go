// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of planning master data, keyed by product code.
type Product struct {
	Code             string          `json:"product_code" db:"product_code"`
	Name             string          `json:"product_name" db:"product_name"`
	OpeningInventory float64         `json:"opening_inventory" db:"opening_inventory"`
	MonthlyCapacity  float64         `json:"monthly_capacity" db:"monthly_capacity"`
	UnitCost         decimal.Decimal `json:"unit_cost" db:"unit_cost"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at" db:"updated_at"`
}

// ProductInput is the inbound upsert payload. Validation tags are enforced at
// the service boundary before the row is written.
type ProductInput struct {
	Code             string          `json:"product_code" validate:"required"`
	Name             string          `json:"product_name" validate:"required"`
	OpeningInventory float64         `json:"opening_inventory" validate:"gte=0"`
	MonthlyCapacity  float64         `json:"monthly_capacity" validate:"gte=0"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
}

// SalesRecord is one historical demand observation for a product. Period is
// normalized to a date; month labels map to the first of the month.
type SalesRecord struct {
	ID          int64     `json:"id,omitempty" db:"id"`
	ProductCode string    `json:"product_code" db:"product_code"`
	Period      time.Time `json:"period" db:"period"`
	Quantity    float64   `json:"qty" db:"qty"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
}

// ForecastResult is the outcome of one model strategy: a one-step-ahead point
// forecast and the in-sample MAPE it achieved. Never persisted.
type ForecastResult struct {
	ModelName     string  `json:"model_name"`
	PointForecast float64 `json:"point_forecast"`
	ErrorMetric   float64 `json:"error_metric"`
}

// ForecastReport bundles every strategy's result with the selected winner.
type ForecastReport struct {
	ProductCode string           `json:"product_code"`
	Results     []ForecastResult `json:"results"`
	Best        ForecastResult   `json:"best"`
	Observed    int              `json:"observed_periods"`
}

// KPIRow is one product's derived planning metrics, recomputed on each view.
// All numeric fields are rounded for display; the calculator works at full
// precision.
type KPIRow struct {
	ProductCode         string          `json:"product_code"`
	ProductName         string          `json:"product_name"`
	AverageDemand       float64         `json:"average_demand"`
	SafetyStock         float64         `json:"safety_stock"`
	EndingInventory     float64         `json:"ending_inventory"`
	InventoryTurns      float64         `json:"inventory_turns"`
	ServiceLevel        float64         `json:"service_level"`
	CapacityUtilization float64         `json:"capacity_utilization"`
	InventoryValue      decimal.Decimal `json:"inventory_value"`
}

// ScenarioRow is a KPI recomputation under a demand multiplier, one row per
// product and scenario label.
type ScenarioRow struct {
	ProductCode    string          `json:"product_code"`
	ProductName    string          `json:"product_name"`
	Scenario       string          `json:"scenario"`
	Multiplier     float64         `json:"multiplier"`
	ScenarioDemand float64         `json:"scenario_demand"`
	ServiceLevel   float64         `json:"service_level"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}

// PortfolioSummary rolls the per-product KPI rows up across the portfolio.
type PortfolioSummary struct {
	Products            int             `json:"products"`
	ProductsWithHistory int             `json:"products_with_history"`
	TotalInventoryValue decimal.Decimal `json:"total_inventory_value"`
	TotalAnnualDemand   float64         `json:"total_annual_demand"`
	AvgServiceLevel     float64         `json:"avg_service_level"`
	AvgInventoryTurns   float64         `json:"avg_inventory_turns"`
}

// UploadReceipt describes an accepted sales-history batch.
type UploadReceipt struct {
	BatchID    string `json:"batch_id"`
	Filename   string `json:"filename"`
	Records    int    `json:"records"`
	ArchiveKey string `json:"archive_key,omitempty"`
}
