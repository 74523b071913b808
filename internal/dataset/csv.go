// backend-go/internal/dataset/csv.go
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Bill dates arrive in a few shapes depending on which upstream
// export produced the file. A date matching none of these marks the
// row DateValid=false; the load itself never fails on a bad date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02-01-2006",
	"2006/01/02",
}

// LoadFromDir reads the four CSV tables from the dataset directory.
func LoadFromDir(cfg config.DatasetConfig) (*Dataset, error) {
	sales, err := loadSalesCSV(filepath.Join(cfg.Dir, cfg.SalesFile))
	if err != nil {
		return nil, err
	}
	depotEdges, err := loadEdgesCSV(filepath.Join(cfg.Dir, cfg.DepotEdgesFile))
	if err != nil {
		return nil, err
	}
	distilleryEdges, err := loadEdgesCSV(filepath.Join(cfg.Dir, cfg.DistilleryEdgesFile))
	if err != nil {
		return nil, err
	}
	stock, err := loadStockCSV(filepath.Join(cfg.Dir, cfg.StockFile))
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Sales:           sales,
		DepotEdges:      depotEdges,
		DistilleryEdges: distilleryEdges,
		Stock:           stock,
	}, nil
}

func loadSalesCSV(path string) ([]domain.SalesRecord, error) {
	var records []domain.SalesRecord
	err := readCSV(path, func(row map[string]string) {
		rec := domain.SalesRecord{
			EntityCode:  row["entity_code"],
			Brand:       row["brand_name"],
			PackageSize: row["package_size"],
			SoldQty:     parseQty(path, row["sold_qty"]),
		}
		if t, ok := parseDate(row["bill_date"]); ok {
			rec.BillDate = t
			rec.DateValid = true
		}
		records = append(records, rec)
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func loadEdgesCSV(path string) ([]domain.Edge, error) {
	var edges []domain.Edge
	err := readCSV(path, func(row map[string]string) {
		edges = append(edges, domain.Edge{
			From: row["from_entity_code"],
			To:   row["to_entity_code"],
		})
	})
	if err != nil {
		return nil, err
	}
	return edges, nil
}

func loadStockCSV(path string) ([]domain.StockRecord, error) {
	var records []domain.StockRecord
	err := readCSV(path, func(row map[string]string) {
		records = append(records, domain.StockRecord{
			EntityCode:  row["entity_code"],
			Brand:       row["brand_name"],
			PackageSize: row["package_size"],
			ClosedQty:   parseQty(path, row["closed_qty"]),
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// readCSV streams a header-mapped CSV, calling fn once per data row.
// Values stay strings; numeric-looking entity codes and package
// sizes are never reinterpreted.
func readCSV(path string, fn func(row map[string]string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header of %s: %w", path, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.ToLower(header[i]))
	}

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(fields) {
				row[name] = strings.TrimSpace(fields[i])
			}
		}
		fn(row)
	}
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseQty(path, value string) float64 {
	if value == "" {
		return 0
	}
	qty, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Warn().Str("file", filepath.Base(path)).Str("value", value).Msg("unparseable quantity treated as zero")
		return 0
	}
	return qty
}
