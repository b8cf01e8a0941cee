package catalog

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Importer loads catalogue files and upserts their products.
type Importer struct {
	loader Loader
	store  Store
	logger zerolog.Logger
}

// NewImporter creates a new catalogue importer.
func NewImporter(loader Loader, store Store, logger zerolog.Logger) *Importer {
	return &Importer{
		loader: loader,
		store:  store,
		logger: logger.With().Str("component", "catalog-importer").Logger(),
	}
}

// Import loads every file concurrently and upserts the products once all of
// them decoded. Any failure aborts the import before anything is written.
// Products repeated across files resolve to the one from the later file.
func (i *Importer) Import(ctx context.Context, paths []string) (int, error) {
	if len(paths) == 0 {
		return 0, nil
	}

	i.logger.Info().Int("file_count", len(paths)).Msg("importing catalogue")

	loaded := make([][]model.Product, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for idx, path := range paths {
		g.Go(func() error {
			products, err := i.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load catalogue file %s: %w", path, err)
			}
			loaded[idx] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		i.logger.Error().Err(err).Msg("catalogue import failed")
		return 0, err
	}

	products := merge(loaded)
	if err := i.store.Upsert(ctx, products); err != nil {
		i.logger.Error().Err(err).Int("product_count", len(products)).Msg("failed to store catalogue")
		return 0, fmt.Errorf("failed to store catalogue: %w", err)
	}

	i.logger.Info().Int("product_count", len(products)).Msg("catalogue imported")
	return len(products), nil
}

// merge flattens the per-file products, keeping the last record for each id
// at the position it first appeared.
func merge(files [][]model.Product) []model.Product {
	index := make(map[string]int)
	var products []model.Product
	for _, file := range files {
		for _, p := range file {
			if at, ok := index[p.ID]; ok {
				products[at] = p
				continue
			}
			index[p.ID] = len(products)
			products = append(products, p)
		}
	}
	return products
}
