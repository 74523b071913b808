// backend-go/cmd/replenish/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/dataset"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/forecast"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/ledger"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/network"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/replenish"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/storage"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func datasetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "data-dir",
			Usage:   "Directory containing the dataset CSV files",
			Value:   "./data",
			EnvVars: []string{"DATASET_DIR"},
		},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "replenish",
		Usage: "Compute replenishment quantities from the dataset without running the server",
		Commands: []*cli.Command{
			{
				Name:  "compute",
				Usage: "Run one replenishment request and print the result as JSON",
				Flags: append(datasetFlags(),
					&cli.StringFlag{
						Name:     "variant",
						Usage:    "Request variant: depot, distillery-cumulative or distillery-single",
						Value:    string(replenish.VariantDepot),
						Required: false,
					},
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Entity identifier (depot or distillery code)",
						Required: true,
					},
					&cli.IntFlag{
						Name:     "from-month",
						Usage:    "Target month (1-12)",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "month",
						Usage: "Lookback length in months",
						Value: 2,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Forecast worker pool size",
						Value: 4,
					},
				),
				Action: runCompute,
			},
			{
				Name:  "fetch",
				Usage: "Download the dataset CSVs from the configured bucket",
				Flags: append(datasetFlags(),
					&cli.StringFlag{Name: "endpoint", EnvVars: []string{"BUCKET_ENDPOINT"}, Required: true},
					&cli.StringFlag{Name: "access-key", EnvVars: []string{"BUCKET_ACCESS_KEY"}, Required: true},
					&cli.StringFlag{Name: "secret-key", EnvVars: []string{"BUCKET_SECRET_KEY"}, Required: true},
					&cli.StringFlag{Name: "bucket", EnvVars: []string{"BUCKET_NAME"}, Required: true},
					&cli.StringFlag{Name: "region", EnvVars: []string{"BUCKET_REGION"}, Value: "us-east-1"},
					&cli.StringFlag{Name: "prefix", EnvVars: []string{"BUCKET_PREFIX"}},
				),
				Action: runFetch,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func datasetConfig(c *cli.Context) config.DatasetConfig {
	cfg := config.Load().Dataset
	cfg.Dir = c.String("data-dir")
	return cfg
}

func runCompute(c *cli.Context) error {
	variant := replenish.Variant(c.String("variant"))
	switch variant {
	case replenish.VariantDepot, replenish.VariantDistilleryCumulative, replenish.VariantDistillerySingle:
	default:
		return fmt.Errorf("unknown variant %q", variant)
	}

	fromMonth := c.Int("from-month")
	if fromMonth < 1 || fromMonth > 12 {
		return fmt.Errorf("from-month must be between 1 and 12")
	}

	ds, err := dataset.LoadFromDir(datasetConfig(c))
	if err != nil {
		return err
	}

	graph := network.NewGraph(ds.DistilleryEdges, ds.DepotEdges)
	sales := ledger.NewSalesLedger(ds.Sales)
	stock := replenish.NewStockAggregator(ledger.NewStockLedger(ds.Stock))
	forecaster := forecast.NewForecaster(forecast.NewTrendEngine())
	pipeline := replenish.NewPipeline(graph, sales, stock, forecaster, c.Int("workers"))

	rows, err := pipeline.Run(c.Context, replenish.Request{
		Variant:        variant,
		ID:             c.String("id"),
		FromMonth:      fromMonth,
		LookbackMonths: c.Int("month"),
	})
	if err != nil {
		return err
	}

	var out any
	switch variant {
	case replenish.VariantDistilleryCumulative:
		out = domain.ManufactureItems(rows)
	case replenish.VariantDistillerySingle:
		out = domain.IntentItems(rows)
	default:
		out = domain.DepotItems(rows)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func runFetch(c *cli.Context) error {
	store, err := storage.NewMinioClient(storage.BucketConfig{
		Endpoint:  c.String("endpoint"),
		AccessKey: c.String("access-key"),
		SecretKey: c.String("secret-key"),
		Bucket:    c.String("bucket"),
		Region:    c.String("region"),
		UseSSL:    true,
	})
	if err != nil {
		return err
	}

	cfg := datasetConfig(c)
	cfg.BucketPrefix = c.String("prefix")
	return dataset.FetchFromBucket(context.Background(), store, cfg)
}
