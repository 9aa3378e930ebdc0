package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/planwise/ibp-backend/internal/forecast"
	"github.com/planwise/ibp-backend/internal/planning"
	"github.com/shopspring/decimal"
)

type fakeProductRepo struct {
	products []domain.Product
	upserted []domain.Product
	deleted  []string
}

func (f *fakeProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) Get(ctx context.Context, code string) (*domain.Product, error) {
	for i := range f.products {
		if f.products[i].Code == code {
			return &f.products[i], nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Upsert(ctx context.Context, p domain.Product) error {
	f.upserted = append(f.upserted, p)
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, code string) error {
	f.deleted = append(f.deleted, code)
	return nil
}

type fakeSalesRepo struct {
	records  []domain.SalesRecord
	appended [][]domain.SalesRecord
}

func (f *fakeSalesRepo) ListByProduct(ctx context.Context, productCode string) ([]domain.SalesRecord, error) {
	var out []domain.SalesRecord
	for _, rec := range f.records {
		if rec.ProductCode == productCode {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeSalesRepo) ListAll(ctx context.Context) ([]domain.SalesRecord, error) {
	return f.records, nil
}

func (f *fakeSalesRepo) AppendBatch(ctx context.Context, records []domain.SalesRecord) error {
	f.appended = append(f.appended, records)
	f.records = append(f.records, records...)
	return nil
}

type fakeCache struct {
	rows        []domain.KPIRow
	hit         bool
	sets        int
	invalidated int
}

func (f *fakeCache) GetKPIs(ctx context.Context) ([]domain.KPIRow, bool, error) {
	return f.rows, f.hit, nil
}

func (f *fakeCache) SetKPIs(ctx context.Context, rows []domain.KPIRow) error {
	f.rows = rows
	f.sets++
	return nil
}

func (f *fakeCache) Invalidate(ctx context.Context) error {
	f.rows = nil
	f.hit = false
	f.invalidated++
	return nil
}

type fakeArchiver struct {
	keys []string
}

func (f *fakeArchiver) Archive(ctx context.Context, key, contentType string, data []byte) (string, error) {
	f.keys = append(f.keys, key)
	return key, nil
}

func seededRepos() (*fakeProductRepo, *fakeSalesRepo) {
	products := &fakeProductRepo{products: []domain.Product{
		{Code: "A1", Name: "Alpine Water", OpeningInventory: 100, MonthlyCapacity: 50, UnitCost: decimal.NewFromFloat(2.0)},
		{Code: "B2", Name: "Birch Juice", OpeningInventory: 0, MonthlyCapacity: 120, UnitCost: decimal.NewFromFloat(3.5)},
	}}
	sales := &fakeSalesRepo{}
	for _, qty := range []float64{40, 50, 60} {
		sales.records = append(sales.records, domain.SalesRecord{ProductCode: "A1", Quantity: qty})
	}
	return products, sales
}

func newPlanningService(products *fakeProductRepo, sales *fakeSalesRepo, c *fakeCache) *PlanningService {
	calc := planning.NewCalculator(1.65)
	gen := planning.NewScenarioGenerator(calc, planning.Scenarios(0.10))
	return NewPlanningService(products, sales, calc, gen, c)
}

func TestPlanningOmitsProductsWithoutHistory(t *testing.T) {
	products, sales := seededRepos()
	svc := newPlanningService(products, sales, &fakeCache{})
	ctx := context.Background()

	rows, err := svc.KPIRows(ctx)
	if err != nil {
		t.Fatalf("KPIRows returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductCode != "A1" {
		t.Fatalf("expected one KPI row for A1, got %+v", rows)
	}

	scenarioRows, err := svc.ScenarioRows(ctx)
	if err != nil {
		t.Fatalf("ScenarioRows returned error: %v", err)
	}
	if len(scenarioRows) != 3 {
		t.Fatalf("expected 3 scenario rows, got %d", len(scenarioRows))
	}
	for _, row := range scenarioRows {
		if row.ProductCode != "A1" {
			t.Errorf("scenario row for %q; products without history must be omitted", row.ProductCode)
		}
	}

	summary, err := svc.Portfolio(ctx)
	if err != nil {
		t.Fatalf("Portfolio returned error: %v", err)
	}
	if summary.Products != 2 {
		t.Errorf("products = %d, want 2", summary.Products)
	}
	if summary.ProductsWithHistory != 1 {
		t.Errorf("products with history = %d, want 1", summary.ProductsWithHistory)
	}
}

func TestPlanningKPICache(t *testing.T) {
	products, sales := seededRepos()
	c := &fakeCache{}
	svc := newPlanningService(products, sales, c)
	ctx := context.Background()

	if _, err := svc.KPIRows(ctx); err != nil {
		t.Fatalf("KPIRows returned error: %v", err)
	}
	if c.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", c.sets)
	}

	// A populated cache short-circuits the recompute even if the repository
	// contents change underneath it.
	c.hit = true
	sales.records = nil
	rows, err := svc.KPIRows(ctx)
	if err != nil {
		t.Fatalf("KPIRows returned error: %v", err)
	}
	if len(rows) != 1 || rows[0].ProductCode != "A1" {
		t.Errorf("expected cached row for A1, got %+v", rows)
	}
}

func TestProductUpsertValidation(t *testing.T) {
	testCases := []struct {
		name      string
		input     domain.ProductInput
		wantField string
	}{
		{
			name:      "empty code",
			input:     domain.ProductInput{Name: "X"},
			wantField: "product_code",
		},
		{
			name:      "whitespace code",
			input:     domain.ProductInput{Code: "   ", Name: "X"},
			wantField: "product_code",
		},
		{
			name:      "empty name",
			input:     domain.ProductInput{Code: "A1"},
			wantField: "product_name",
		},
		{
			name:      "negative opening inventory",
			input:     domain.ProductInput{Code: "A1", Name: "X", OpeningInventory: -1},
			wantField: "opening_inventory",
		},
		{
			name:      "negative capacity",
			input:     domain.ProductInput{Code: "A1", Name: "X", MonthlyCapacity: -5},
			wantField: "monthly_capacity",
		},
		{
			name:      "negative unit cost",
			input:     domain.ProductInput{Code: "A1", Name: "X", UnitCost: decimal.NewFromFloat(-0.5)},
			wantField: "unit_cost",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeProductRepo{}
			svc := NewProductService(repo, &fakeCache{})

			_, err := svc.Upsert(context.Background(), tc.input)

			var valErr *domain.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tc.wantField {
				t.Errorf("field = %q, want %q", valErr.Field, tc.wantField)
			}
			if len(repo.upserted) != 0 {
				t.Errorf("invalid input must not reach the repository")
			}
		})
	}
}

func TestProductUpsertInvalidatesCache(t *testing.T) {
	repo := &fakeProductRepo{}
	c := &fakeCache{}
	svc := NewProductService(repo, c)

	input := domain.ProductInput{
		Code:            "  A1  ",
		Name:            "Alpine Water",
		MonthlyCapacity: 50,
		UnitCost:        decimal.NewFromFloat(2.0),
	}
	p, err := svc.Upsert(context.Background(), input)
	if err != nil {
		t.Fatalf("Upsert returned error: %v", err)
	}
	if p.Code != "A1" {
		t.Errorf("code = %q, want trimmed A1", p.Code)
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected one upsert, got %d", len(repo.upserted))
	}
	if c.invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", c.invalidated)
	}
}

func TestProductDelete(t *testing.T) {
	repo := &fakeProductRepo{}
	c := &fakeCache{}
	svc := NewProductService(repo, c)
	ctx := context.Background()

	var valErr *domain.ValidationError
	if err := svc.Delete(ctx, "  "); !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError for blank code, got %v", err)
	}

	if err := svc.Delete(ctx, "A1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "A1" {
		t.Errorf("deleted = %v, want [A1]", repo.deleted)
	}
	if c.invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", c.invalidated)
	}
}

func TestForecastNoHistory(t *testing.T) {
	svc := NewForecastService(&fakeSalesRepo{}, forecast.NewDefaultRegistry(0.3))

	_, err := svc.Forecast(context.Background(), "B2")

	var noHistory *domain.NoHistoryError
	if !errors.As(err, &noHistory) {
		t.Fatalf("expected NoHistoryError, got %v", err)
	}
	if noHistory.ProductCode != "B2" {
		t.Errorf("product code = %q, want B2", noHistory.ProductCode)
	}
}

func TestForecastReport(t *testing.T) {
	_, sales := seededRepos()
	svc := NewForecastService(sales, forecast.NewDefaultRegistry(0.3))

	report, err := svc.Forecast(context.Background(), "A1")
	if err != nil {
		t.Fatalf("Forecast returned error: %v", err)
	}

	if report.ProductCode != "A1" {
		t.Errorf("product code = %q, want A1", report.ProductCode)
	}
	if report.Observed != 3 {
		t.Errorf("observed = %d, want 3", report.Observed)
	}
	if len(report.Results) == 0 {
		t.Fatal("expected at least one model result")
	}
	for _, result := range report.Results {
		if report.Best.ErrorMetric > result.ErrorMetric {
			t.Errorf("best %v has higher error than %v", report.Best, result)
		}
	}
}

func TestHistoryUpload(t *testing.T) {
	sales := &fakeSalesRepo{}
	c := &fakeCache{}
	archiver := &fakeArchiver{}
	svc := NewHistoryService(sales, c, archiver)

	data := []byte("product_code,period,qty\nA1,2024-01,40\nA1,2024-02,50\n")
	receipt, err := svc.Upload(context.Background(), "history.csv", data)
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}

	if receipt.Records != 2 {
		t.Errorf("records = %d, want 2", receipt.Records)
	}
	if receipt.BatchID == "" {
		t.Error("expected a batch id")
	}
	if len(sales.appended) != 1 || len(sales.appended[0]) != 2 {
		t.Fatalf("expected one appended batch of 2, got %+v", sales.appended)
	}
	if c.invalidated != 1 {
		t.Errorf("cache invalidations = %d, want 1", c.invalidated)
	}
	if len(archiver.keys) != 1 || !strings.HasPrefix(archiver.keys[0], "uploads/") {
		t.Errorf("archive keys = %v, want one uploads/ key", archiver.keys)
	}
	if receipt.ArchiveKey != archiver.keys[0] {
		t.Errorf("receipt archive key = %q, want %q", receipt.ArchiveKey, archiver.keys[0])
	}
}

func TestHistoryUploadRejectsMalformedBatch(t *testing.T) {
	sales := &fakeSalesRepo{}
	c := &fakeCache{}
	svc := NewHistoryService(sales, c, &fakeArchiver{})

	data := []byte("product_code,period,qty\nA1,2024-01,40\nA1,2024-02,bad\n")
	_, err := svc.Upload(context.Background(), "history.csv", data)

	var uploadErr *domain.UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("expected UploadError, got %v", err)
	}
	if len(sales.appended) != 0 {
		t.Errorf("rejected batch must not be stored")
	}
	if c.invalidated != 0 {
		t.Errorf("rejected batch must not invalidate the cache")
	}
}
