package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/domain"
)

func TestPersistentPreRun_FileCatalogMissingPath(t *testing.T) {
	shopStore = nil
	t.Cleanup(func() {
		rootCmd.PersistentFlags().Set("catalog", "memory")
		resetCLI()
	})
	rootCmd.SetArgs([]string{"--catalog", "file", "--catalog-file", "", "products"})
	if err := Execute(); err == nil {
		t.Fatalf("expected error when catalog file path is empty, got nil")
	}
}

func TestPersistentPreRun_UnknownCatalogKind(t *testing.T) {
	shopStore = nil
	t.Cleanup(func() {
		rootCmd.PersistentFlags().Set("catalog", "memory")
		resetCLI()
	})
	rootCmd.SetArgs([]string{"--catalog", "unknown", "products"})
	if err := Execute(); err == nil {
		t.Fatalf("expected error for unknown catalog kind, got nil")
	}
}

func TestPersistentPreRun_FileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.ndjson")
	require.NoError(t, os.WriteFile(path, []byte("{\"id\":\"n1\",\"name\":\"N1\",\"price\":\"3.00\"}\n"), 0o644))

	shopStore = nil
	t.Cleanup(func() {
		rootCmd.PersistentFlags().Set("catalog", "memory")
		rootCmd.PersistentFlags().Set("catalog-file", "data/catalog.json")
		resetCLI()
	})
	out, err := run("--catalog", "file", "--catalog-file", path, "products")
	require.NoError(t, err)
	assert.Contains(t, out, "n1 | N1 | 3.00")
}

func TestCommandErrors(t *testing.T) {
	useTestStore(t)

	_, err := run("cart", "add", "nope")
	assert.True(t, domain.IsNotFoundError(err), "got %v", err)

	_, err = run("cart", "add", "P1", "--quantity", "0")
	assert.True(t, domain.IsInvalidQuantityError(err), "got %v", err)

	_, err = run("cart", "update", "P2", "3")
	assert.True(t, domain.IsNotFoundError(err), "got %v", err)

	_, err = run("cart", "update", "P2", "many")
	assert.Error(t, err)

	_, err = run("checkout")
	assert.True(t, domain.IsEmptyCartError(err), "got %v", err)

	_, err = run("cart", "add", "P1")
	require.NoError(t, err)
	_, err = run("checkout", "--code", "DISCOUNT-XXXXXX")
	assert.True(t, domain.IsInvalidDiscountError(err), "got %v", err)

	_, err = run("order", "missing")
	assert.True(t, domain.IsNotFoundError(err), "got %v", err)

	_, err = run("products", "export")
	assert.EqualError(t, err, "--file required")
}
