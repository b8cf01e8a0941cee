// Package catalog imports product seed files into the product store.
package catalog

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"storefront/internal/model"

	"github.com/shopspring/decimal"
)

// Loader reads one gzipped JSON lines catalogue file.
type Loader interface {
	// Load returns every product in the file at path.
	Load(ctx context.Context, path string) ([]model.Product, error)
}

// Store persists imported products.
type Store interface {
	Upsert(ctx context.Context, products []model.Product) error
}

// ErrInvalidRecord is returned for a catalogue line that is not a usable product.
var ErrInvalidRecord = errors.New("catalog: invalid record")

// record is one catalogue line. Image may be a string or an array of strings.
type record struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    model.ImageList `json:"image"`
	Sizes    []string        `json:"sizes"`
}

func (r record) product() (model.Product, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return model.Product{}, fmt.Errorf("%w: id is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.Name) == "" {
		return model.Product{}, fmt.Errorf("%w: product %s has no name", ErrInvalidRecord, id)
	}
	if r.Price.IsNegative() {
		return model.Product{}, fmt.Errorf("%w: product %s has a negative price", ErrInvalidRecord, id)
	}

	return model.Product{
		ID:       id,
		Name:     strings.TrimSpace(r.Name),
		Price:    r.Price,
		Category: strings.TrimSpace(r.Category),
		Image:    model.ImageList(r.Image.Normalized()),
		Sizes:    r.Sizes,
	}, nil
}

// decode reads gzipped JSON lines from r. Blank lines are skipped.
func decode(ctx context.Context, r io.Reader) ([]model.Product, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	var products []model.Product
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		// Check context cancellation periodically
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidRecord, lineNo, err)
		}
		p, err := rec.product()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		products = append(products, p)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	return products, nil
}
