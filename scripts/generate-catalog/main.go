package main

import (
	"compress/gzip"
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"storefront/internal/catalog"
)

// Generates a sample catalogue feed for local development. The output
// matches the gzipped JSON-lines format the startup importer reads.
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	entries := []catalog.Entry{
		{Name: "Drone", Description: "A flying camera", Price: 9999, Stock: 50, Category: "Electronics"},
		{Name: "Signature Box III", Description: "A dish-washing robot", Price: 300000, Stock: 10, Category: "Electronics"},
		{Name: "Rubber Gloves", Description: "Boring dish-washing safety wear", Price: 499, Stock: 500, Category: "Kitchen"},
		{Name: "Espresso Machine", Description: "Fifteen-bar pump espresso maker", Price: 24900, Stock: 25, Category: "Kitchen"},
		{Name: "The Odyssey", Description: "Epic poem, new translation", Price: 1599, Stock: 100, Category: "Books"},
		{Name: "Practical Databases", Description: "A gentle introduction", Price: 4250, Stock: 40, Category: "Books"},
	}

	path := filepath.Join(dataDir, "products.jsonl.gz")

	file, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	defer gz.Close()

	encoder := json.NewEncoder(gz)
	for _, entry := range entries {
		if err := encoder.Encode(entry); err != nil {
			log.Fatalf("Failed to encode entry %q: %v", entry.Name, err)
		}
	}

	log.Printf("Wrote %d entries to %s", len(entries), path)
}
