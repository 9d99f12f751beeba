package store

import (
	"fmt"

	"storefront/domain"
)

// NewCatalog constructs a domain.Catalog by kind: "memory" or "file".
// For file catalogs, provide the file path in path; for memory, path is ignored
// and the built-in products are served.
func NewCatalog(kind, path string) (domain.Catalog, error) {
	switch kind {
	case "memory", "mem", "":
		return NewDefaultCatalog(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file path required for file catalog")
		}
		return NewFileCatalog(path)
	default:
		return nil, fmt.Errorf("unknown catalog kind: %s", kind)
	}
}
