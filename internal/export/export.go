// Package export serializes an assembled catalog into the marketplace
// feed formats. Both the XML shape and the JSON field set are committed
// contracts of the downstream ingestion.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/Irishery/products-parser/internal/config"
	"github.com/Irishery/products-parser/internal/domain"

	log "github.com/sirupsen/logrus"
)

type Exporter struct {
	format   string
	filename string
}

func New(cfg config.ExportConfig) *Exporter {
	return &Exporter{
		format:   cfg.Format,
		filename: cfg.Filename,
	}
}

// Export writes the catalog to the configured file. Write failures are
// hard failures of the run; they are reported, not retried.
func (e *Exporter) Export(catalog *domain.Catalog) (string, error) {
	path := fmt.Sprintf("%s.%s", e.filename, e.format)

	var data []byte
	switch e.format {
	case "json":
		encoded, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode catalog: %w", err)
		}
		data = encoded
	default:
		data = []byte(BuildXML(catalog, time.Now()))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write feed to %s: %w", path, err)
	}

	log.Infof("✅ Feed written to %s", path)
	return path, nil
}

// sortedProducts returns the catalog's products in ascending id order.
func sortedProducts(catalog *domain.Catalog) []*domain.Product {
	products := make([]*domain.Product, 0, len(catalog.Products))
	for _, product := range catalog.Products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
