// internal/upload/parser.go
package upload

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/planwise/ibp-backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

// Required upload columns. The period column also accepts the month/date
// spellings seen in exported planning sheets.
var periodAliases = map[string]bool{
	"period": true,
	"month":  true,
	"date":   true,
}

var periodLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	"2006/01",
}

// Parse reads a sales-history batch from an uploaded CSV or XLSX file. The
// whole batch is rejected on the first malformed row so a partial history is
// never stored.
func Parse(filename string, r io.Reader) ([]domain.SalesRecord, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return parseRows(newCSVRows(r))
	case ".xlsx", ".xlsm":
		return parseXLSX(r)
	default:
		return nil, &domain.UploadError{Reason: fmt.Sprintf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(filename))}
	}
}

// rowSource abstracts CSV and spreadsheet iteration so both formats share the
// same validation path.
type rowSource interface {
	Next() ([]string, bool, error)
}

type csvRows struct {
	reader *csv.Reader
}

func newCSVRows(r io.Reader) *csvRows {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return &csvRows{reader: cr}
}

func (c *csvRows) Next() ([]string, bool, error) {
	record, err := c.reader.Read()
	if err == io.EOF {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return record, true, nil
}

type sliceRows struct {
	rows [][]string
	pos  int
}

func (s *sliceRows) Next() ([]string, bool, error) {
	if s.pos >= len(s.rows) {
		return nil, false, nil
	}
	row := s.rows[s.pos]
	s.pos++
	return row, true, nil
}

func parseXLSX(r io.Reader) ([]domain.SalesRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &domain.UploadError{Reason: fmt.Sprintf("could not open spreadsheet: %v", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &domain.UploadError{Reason: "spreadsheet has no sheets"}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &domain.UploadError{Reason: fmt.Sprintf("could not read sheet %s: %v", sheets[0], err)}
	}

	return parseRows(&sliceRows{rows: rows})
}

func parseRows(src rowSource) ([]domain.SalesRecord, error) {
	header, ok, err := src.Next()
	if err != nil {
		return nil, &domain.UploadError{Reason: fmt.Sprintf("could not read header row: %v", err)}
	}
	if !ok {
		return nil, &domain.UploadError{Reason: "file is empty"}
	}

	codeIdx, periodIdx, qtyIdx, err := locateColumns(header)
	if err != nil {
		return nil, err
	}

	records := make([]domain.SalesRecord, 0)
	line := 1
	for {
		row, ok, err := src.Next()
		if err != nil {
			return nil, &domain.UploadError{Line: line + 1, Reason: fmt.Sprintf("unreadable row: %v", err)}
		}
		if !ok {
			break
		}
		line++

		if isBlankRow(row) {
			continue
		}

		rec, err := parseRecord(row, codeIdx, periodIdx, qtyIdx, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &domain.UploadError{Reason: "file contains no data rows"}
	}

	return records, nil
}

func locateColumns(header []string) (codeIdx, periodIdx, qtyIdx int, err error) {
	codeIdx, periodIdx, qtyIdx = -1, -1, -1
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case name == "product_code":
			codeIdx = i
		case periodAliases[name] && periodIdx < 0:
			periodIdx = i
		case name == "qty" || name == "quantity":
			qtyIdx = i
		}
	}

	var missing []string
	if codeIdx < 0 {
		missing = append(missing, "product_code")
	}
	if periodIdx < 0 {
		missing = append(missing, "period")
	}
	if qtyIdx < 0 {
		missing = append(missing, "qty")
	}
	if len(missing) > 0 {
		return 0, 0, 0, &domain.UploadError{Reason: "missing required columns: " + strings.Join(missing, ", ")}
	}
	return codeIdx, periodIdx, qtyIdx, nil
}

func parseRecord(row []string, codeIdx, periodIdx, qtyIdx, line int) (domain.SalesRecord, error) {
	cell := func(idx int) string {
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	code := cell(codeIdx)
	if code == "" {
		return domain.SalesRecord{}, &domain.UploadError{Line: line, Reason: "product_code is empty"}
	}

	period, err := ParsePeriod(cell(periodIdx))
	if err != nil {
		return domain.SalesRecord{}, &domain.UploadError{Line: line, Reason: err.Error()}
	}

	qtyRaw := cell(qtyIdx)
	qty, err := strconv.ParseFloat(qtyRaw, 64)
	if err != nil {
		return domain.SalesRecord{}, &domain.UploadError{Line: line, Reason: fmt.Sprintf("qty %q is not numeric", qtyRaw)}
	}
	if qty < 0 {
		return domain.SalesRecord{}, &domain.UploadError{Line: line, Reason: fmt.Sprintf("qty %v is negative", qty)}
	}

	return domain.SalesRecord{
		ProductCode: code,
		Period:      period,
		Quantity:    qty,
	}, nil
}

// ParsePeriod accepts a full date or a month label; month labels normalize to
// the first of the month.
func ParsePeriod(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("period is empty")
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("period %q is not a recognized date or month label", value)
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
