package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ratedomain "github.com/smallbiznis/ratebook/internal/rate/domain"
	"github.com/smallbiznis/ratebook/internal/rate/repository"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Import bulk-loads daily rates from a CSV or XLSX file using the caller's
// column mapping. Every imported date re-prices its bill entries, and the
// whole import is one transaction.
func (s *Service) Import(ctx context.Context, req ratedomain.ImportRequest) (*ratedomain.ImportResponse, error) {
	if req.Mapping.Date == "" || req.Mapping.Tandoor == "" || req.Mapping.Boiler == "" || req.Mapping.Egg == "" {
		return nil, ratedomain.ErrInvalidMapping
	}

	var rows [][]string
	var err error
	switch strings.ToLower(strings.TrimSpace(req.Format)) {
	case "csv":
		rows, err = readCSV(req.Reader)
	case "xlsx":
		rows, err = readXLSX(req.Reader)
	default:
		return nil, ratedomain.ErrInvalidFormat
	}
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, ratedomain.ErrEmptyImportFile
	}

	cols, err := resolveColumns(rows[0], req.Mapping)
	if err != nil {
		return nil, err
	}

	resp := &ratedomain.ImportResponse{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := repository.NewRepository(tx)

		for _, row := range rows[1:] {
			rate, ok := parseImportRow(row, cols)
			if !ok {
				resp.SkippedRows++
				continue
			}

			if err := repo.Upsert(ctx, rate); err != nil {
				return err
			}
			repriced, err := repriceDate(ctx, tx, rate)
			if err != nil {
				return fmt.Errorf("reprice bills for %s: %w", rate.Date, err)
			}
			resp.ImportedRates++
			resp.RepricedBills += repriced
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()

	s.log.Info("rates imported",
		zap.Int64("imported", resp.ImportedRates),
		zap.Int64("skipped", resp.SkippedRows),
		zap.Int64("repriced_bills", resp.RepricedBills),
	)
	return resp, nil
}

type importColumns struct {
	date    int
	tandoor int
	boiler  int
	egg     int
}

func resolveColumns(header []string, mapping ratedomain.ColumnMapping) (importColumns, error) {
	find := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
				return i
			}
		}
		return -1
	}

	cols := importColumns{
		date:    find(mapping.Date),
		tandoor: find(mapping.Tandoor),
		boiler:  find(mapping.Boiler),
		egg:     find(mapping.Egg),
	}
	if cols.date < 0 || cols.tandoor < 0 || cols.boiler < 0 || cols.egg < 0 {
		return cols, ratedomain.ErrInvalidMapping
	}
	return cols, nil
}

func parseImportRow(row []string, cols importColumns) (*ratedomain.DailyRate, bool) {
	max := cols.date
	for _, c := range []int{cols.tandoor, cols.boiler, cols.egg} {
		if c > max {
			max = c
		}
	}
	if len(row) <= max {
		return nil, false
	}

	date, err := parseFlexibleDate(row[cols.date])
	if err != nil {
		return nil, false
	}

	tandoor, err1 := strconv.ParseFloat(strings.TrimSpace(row[cols.tandoor]), 64)
	boiler, err2 := strconv.ParseFloat(strings.TrimSpace(row[cols.boiler]), 64)
	egg, err3 := strconv.ParseFloat(strings.TrimSpace(row[cols.egg]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}

	return &ratedomain.DailyRate{
		Date:        date,
		TandoorRate: tandoor,
		BoilerRate:  boiler,
		EggRate:     egg,
	}, true
}

// parseFlexibleDate accepts the date shapes rate sheets arrive in,
// preferring day-first for slashed and dashed forms.
func parseFlexibleDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	layouts := []string{
		ratedomain.DateLayout,
		"02/01/2006",
		"2/1/2006",
		"02/01/06",
		"02-01-2006",
		"2-1-2006",
		"02.01.2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(ratedomain.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", value)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ratedomain.ErrEmptyImportFile
	}
	return f.GetRows(sheets[0])
}
