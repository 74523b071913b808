// backend-go/internal/dataset/postgres.go
package dataset

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

type salesRow struct {
	EntityCode  string       `db:"entity_code"`
	BillDate    sql.NullTime `db:"bill_date"`
	BrandName   string       `db:"brand_name"`
	PackageSize string       `db:"package_size"`
	SoldQty     float64      `db:"sold_qty"`
}

type edgeRow struct {
	From string `db:"from_entity_code"`
	To   string `db:"to_entity_code"`
}

type stockRow struct {
	EntityCode  string  `db:"entity_code"`
	BrandName   string  `db:"brand_name"`
	PackageSize string  `db:"package_size"`
	ClosedQty   float64 `db:"closed_qty"`
}

// LoadFromPostgres reads the same four tables from Postgres. This is
// a load source only: the connection closes once the dataset is in
// memory and nothing is ever written back.
func LoadFromPostgres(cfg *config.DatabaseConfig) (*Dataset, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("connect to dataset database: %w", err)
	}
	defer db.Close()
	db.SetConnMaxLifetime(5 * time.Minute)

	var sales []salesRow
	if err := db.Select(&sales, `SELECT entity_code::text AS entity_code, bill_date, brand_name, package_size::text AS package_size, sold_qty FROM retail_sales`); err != nil {
		return nil, fmt.Errorf("load retail_sales: %w", err)
	}

	var depotEdges []edgeRow
	if err := db.Select(&depotEdges, `SELECT from_entity_code::text AS from_entity_code, to_entity_code::text AS to_entity_code FROM depot_retail_links`); err != nil {
		return nil, fmt.Errorf("load depot_retail_links: %w", err)
	}

	var distilleryEdges []edgeRow
	if err := db.Select(&distilleryEdges, `SELECT from_entity_code::text AS from_entity_code, to_entity_code::text AS to_entity_code FROM distillery_depot_links`); err != nil {
		return nil, fmt.Errorf("load distillery_depot_links: %w", err)
	}

	var stock []stockRow
	if err := db.Select(&stock, `SELECT entity_code::text AS entity_code, brand_name, package_size::text AS package_size, closed_qty FROM stock_closing`); err != nil {
		return nil, fmt.Errorf("load stock_closing: %w", err)
	}

	ds := &Dataset{}
	for _, r := range sales {
		rec := domain.SalesRecord{
			EntityCode:  r.EntityCode,
			Brand:       r.BrandName,
			PackageSize: r.PackageSize,
			SoldQty:     r.SoldQty,
		}
		if r.BillDate.Valid {
			rec.BillDate = r.BillDate.Time.UTC()
			rec.DateValid = true
		}
		ds.Sales = append(ds.Sales, rec)
	}
	for _, r := range depotEdges {
		ds.DepotEdges = append(ds.DepotEdges, domain.Edge{From: r.From, To: r.To})
	}
	for _, r := range distilleryEdges {
		ds.DistilleryEdges = append(ds.DistilleryEdges, domain.Edge{From: r.From, To: r.To})
	}
	for _, r := range stock {
		ds.Stock = append(ds.Stock, domain.StockRecord{
			EntityCode:  r.EntityCode,
			Brand:       r.BrandName,
			PackageSize: r.PackageSize,
			ClosedQty:   r.ClosedQty,
		})
	}
	return ds, nil
}
