package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type record struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price,omitempty"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Stock       *int   `json:"stock,omitempty"`
}

func stock(n int) *int { return &n }

// Writes data/seed/catalog.jsonl.gz with a small demo catalog.
// Categories come first so products can reference them by slug.
func main() {
	dataDir := "data/seed"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	records := []record{
		{Type: "category", Name: "Home Decor"},
		{Type: "category", Name: "Kitchen"},
		{Type: "category", Name: "Eco Friendly Goods", Slug: "eco"},
		{Type: "product", Name: "Rattan Lamp", Description: "Hand woven table lamp", Price: "24.99", Category: "home-decor", ImageURL: "/images/rattan-lamp.jpg", Stock: stock(12)},
		{Type: "product", Name: "Linen Cushion", Description: "Stone washed linen cover", Price: "18.50", Category: "home-decor", ImageURL: "/images/linen-cushion.jpg", Stock: stock(30)},
		{Type: "product", Name: "Cast Iron Pan", Description: "Pre-seasoned 26cm skillet", Price: "39.00", Category: "kitchen", ImageURL: "/images/cast-iron-pan.jpg", Stock: stock(8)},
		{Type: "product", Name: "Bamboo Utensil Set", Description: "Five piece set", Price: "12.75", Category: "eco", ImageURL: "/images/bamboo-utensils.jpg", Stock: stock(45)},
		{Type: "product", Name: "Beeswax Wraps", Description: "Pack of three", Price: "14.00", Category: "eco", ImageURL: "/images/beeswax-wraps.jpg", Stock: stock(0)},
		{Type: "product", Name: "Ceramic Vase", Description: "Matte glaze, 30cm", Price: "65.00", Category: "home-decor", ImageURL: "/images/ceramic-vase.jpg", Stock: stock(4)},
		{Type: "product", Name: "Chef Knife", Description: "20cm stainless steel", Price: "120.00", Category: "kitchen", ImageURL: "/images/chef-knife.jpg", Stock: stock(6)},
	}

	filePath := filepath.Join(dataDir, "catalog.jsonl.gz")
	if err := writeCatalog(filePath, records); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d records\n", filePath, len(records))
}

func writeCatalog(filePath string, records []record) error {
	file, err := os.Create(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}

	return nil
}
