package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/planwise/ibp-backend/internal/upload"
	"github.com/urfave/cli/v2"
)

// demoProducts is a small portfolio covering the interesting KPI cases: a
// capacity-constrained product, a zero-opening-inventory product and a
// comfortable baseline.
var demoProducts = []struct {
	code     string
	name     string
	opening  float64
	capacity float64
	cost     float64
}{
	{"A1", "Alpine Water 500ml", 100, 50, 2.00},
	{"B2", "Birch Juice 1l", 0, 120, 3.50},
	{"C3", "Cedar Snack Bar", 250, 40, 1.25},
	{"D4", "Dune Energy Drink", 80, 200, 2.75},
}

func seedMaster(c *cli.Context) error {
	db := dbFrom(c)

	query := `
		INSERT INTO products (product_code, product_name, opening_inventory, monthly_capacity, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (product_code)
		DO UPDATE SET
			product_name = EXCLUDED.product_name,
			opening_inventory = EXCLUDED.opening_inventory,
			monthly_capacity = EXCLUDED.monthly_capacity,
			unit_cost = EXCLUDED.unit_cost,
			updated_at = NOW()
	`

	for _, p := range demoProducts {
		if _, err := db.Exec(query, p.code, p.name, p.opening, p.capacity, p.cost); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.code, err)
		}
		log.Printf("seeded product %s (%s)", p.code, p.name)
	}

	return nil
}

func seedHistory(c *cli.Context) error {
	db := dbFrom(c)
	dataDir := c.String("data-dir")

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return fmt.Errorf("failed to read data dir %s: %w", dataDir, err)
	}

	var files int
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		path := filepath.Join(dataDir, entry.Name())
		if err := importHistoryFile(db, path); err != nil {
			return fmt.Errorf("failed to import %s: %w", entry.Name(), err)
		}
		files++
	}

	if files == 0 {
		log.Printf("no CSV files found in %s", dataDir)
	}
	return nil
}

// importHistoryFile parses one CSV with the standard upload validation and
// inserts the batch inside a single transaction.
func importHistoryFile(db *sql.DB, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := upload.Parse(path, f)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO historical_sales (product_code, period, qty, created_at)
		VALUES ($1, $2, $3, NOW())
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.ProductCode, rec.Period, rec.Quantity); err != nil {
			return fmt.Errorf("failed to insert record for %s: %w", rec.ProductCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("imported %d records from %s", len(records), filepath.Base(path))
	return nil
}
