package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"storefront/domain"
)

// FileCatalog is a MemoryCatalog loaded from a JSON file. The file may hold
// a JSON array of products or newline-delimited product objects.
type FileCatalog struct {
	*MemoryCatalog
	path string
}

// compile-time assertion
var _ domain.Catalog = (*FileCatalog)(nil)

// NewFileCatalog reads and validates the catalog at path.
func NewFileCatalog(path string) (*FileCatalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	products, err := DecodeProducts(b)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	mc, err := NewMemoryCatalog(products)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return &FileCatalog{MemoryCatalog: mc, path: path}, nil
}

// Path returns the file the catalog was loaded from.
func (c *FileCatalog) Path() string {
	return c.path
}

// DecodeProducts parses a JSON array, a single JSON object, or NDJSON.
func DecodeProducts(b []byte) ([]domain.Product, error) {
	btrim := bytes.TrimSpace(b)
	if len(btrim) == 0 {
		return nil, errors.New("empty catalog")
	}

	var products []domain.Product

	// JSON array
	if btrim[0] == '[' {
		if err := json.Unmarshal(btrim, &products); err != nil {
			return nil, err
		}
		return products, nil
	}

	// NDJSON or single JSON object
	scanner := bufio.NewScanner(bytes.NewReader(btrim))
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var p domain.Product
		if err := json.Unmarshal(line, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// WriteProductsFile writes products as an indented JSON array, replacing
// path atomically via a temp file and rename.
func WriteProductsFile(path string, products []domain.Product) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
