// backend-go/internal/dataset/dataset.go
package dataset

import (
	"fmt"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Dataset is the four tables the service loads once at startup. All
// entity codes and package sizes are exact-match text keys.
type Dataset struct {
	Sales           []domain.SalesRecord
	DepotEdges      []domain.Edge
	DistilleryEdges []domain.Edge
	Stock           []domain.StockRecord
}

// Load reads the dataset from the configured source.
func Load(cfg *config.Config) (*Dataset, error) {
	var (
		ds  *Dataset
		err error
	)

	switch cfg.Dataset.Source {
	case "postgres":
		ds, err = LoadFromPostgres(&cfg.Database)
	case "csv", "":
		ds, err = LoadFromDir(cfg.Dataset)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Dataset.Source)
	}
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("source", cfg.Dataset.Source).
		Int("sales_rows", len(ds.Sales)).
		Int("depot_edges", len(ds.DepotEdges)).
		Int("distillery_edges", len(ds.DistilleryEdges)).
		Int("stock_rows", len(ds.Stock)).
		Msg("dataset loaded")

	return ds, nil
}
