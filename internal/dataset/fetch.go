// backend-go/internal/dataset/fetch.go
package dataset

import (
	"context"
	"fmt"
	"path"
	"path/filepath"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/config"
	"github.com/andresuchdata/liquor-replenish/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// FetchFromBucket downloads the four dataset CSVs from S3-compatible
// storage into the dataset directory before loading. Used when the
// data files are published to a bucket rather than baked into the
// deployment.
func FetchFromBucket(ctx context.Context, store storage.ObjectStorage, cfg config.DatasetConfig) error {
	files := []string{
		cfg.SalesFile,
		cfg.DepotEdgesFile,
		cfg.DistilleryEdgesFile,
		cfg.StockFile,
	}

	for _, name := range files {
		key := path.Join(cfg.BucketPrefix, name)
		dest := filepath.Join(cfg.Dir, name)
		if err := store.DownloadObject(ctx, key, dest); err != nil {
			return fmt.Errorf("fetch dataset file %s: %w", name, err)
		}
		log.Info().Str("key", key).Str("dest", dest).Msg("dataset file fetched")
	}
	return nil
}
