package seed

import (
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Record types accepted in a catalog file.
const (
	TypeCategory = "category"
	TypeProduct  = "product"
)

// Record is one line of a catalog seed file. Product records reference
// their category by slug and must carry price and stock.
type Record struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug,omitempty"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    string           `json:"category,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
	Stock       *int             `json:"stock,omitempty"`
}

// Catalog is the decoded content of a seed file, split by record type and
// kept in file order.
type Catalog struct {
	Categories []Record
	Products   []Record
}

// Size returns the number of records in the catalog.
func (c *Catalog) Size() int {
	return len(c.Categories) + len(c.Products)
}

// Loader loads a catalog from a named source.
type Loader interface {
	Load(ctx context.Context, path string) (*Catalog, error)
}

// decode reads a gzipped JSON-lines catalog. Blank lines are skipped.
func decode(ctx context.Context, r io.Reader) (*Catalog, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	catalog := &Catalog{}

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%10_000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("line %d: invalid record: %w", lineNo, err)
		}

		switch rec.Type {
		case TypeCategory:
			catalog.Categories = append(catalog.Categories, rec)
		case TypeProduct:
			catalog.Products = append(catalog.Products, rec)
		default:
			return nil, fmt.Errorf("line %d: unknown record type %q", lineNo, rec.Type)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	return catalog, nil
}
