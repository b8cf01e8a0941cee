//go:build ignore

// generate_sample_catalog writes gzipped JSON lines catalogue files for local
// runs. Point CATALOG_SEED_FILES at the output to import them on startup.
//
//	go run scripts/generate_sample_catalog.go
package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    string   `json:"price"`
	Category string   `json:"category"`
	Image    any      `json:"image"`
	Sizes    []string `json:"sizes,omitempty"`
}

func main() {
	dataDir := "data/catalog"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	// Image is a single string on some records and a list on others.
	catalogs := map[string][]product{
		"apparel.jsonl.gz": {
			{ID: "APP-001", Name: "Classic Tee", Price: "19.99", Category: "apparel", Image: "tee.png", Sizes: []string{"S", "M", "L", "XL"}},
			{ID: "APP-002", Name: "Hoodie", Price: "49.00", Category: "apparel", Image: []string{"hoodie-front.png", "hoodie-back.png"}, Sizes: []string{"M", "L"}},
			{ID: "APP-003", Name: "Denim Jacket", Price: "89.50", Category: "apparel", Image: []string{"jacket.png"}, Sizes: []string{"M", "L", "XL"}},
		},
		"accessories.jsonl.gz": {
			{ID: "ACC-001", Name: "Canvas Tote", Price: "15.00", Category: "accessories", Image: "tote.png"},
			{ID: "ACC-002", Name: "Baseball Cap", Price: "22.00", Category: "accessories", Image: []string{"cap-front.png", "cap-side.png"}},
			// No image: placing an order for it fails with PRODUCT_UNAVAILABLE.
			{ID: "ACC-003", Name: "Gift Card", Price: "50.00", Category: "accessories", Image: []string{}},
		},
	}

	for filename, products := range catalogs {
		filePath := filepath.Join(dataDir, filename)

		if err := createCatalogFile(filePath, products); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s with %d products\n", filePath, len(products))
	}

	fmt.Println("\nSample catalogue files created successfully!")
	fmt.Println("\nImport them with:")
	fmt.Printf("  CATALOG_SEED_FILES=%s,%s\n",
		filepath.Join(dataDir, "apparel.jsonl.gz"),
		filepath.Join(dataDir, "accessories.jsonl.gz"))
}

func createCatalogFile(filePath string, products []product) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := encoder.Encode(p); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	return nil
}
