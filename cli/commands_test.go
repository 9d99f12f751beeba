package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/domain"
	"storefront/store"
)

// capture stdout during cobra execution
func captureOutput(f func() error) (string, error) {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	return buf.String(), err
}

// reset cobra + global state between tests
func resetCLI() {
	rootCmd.SetArgs(nil)
	resetFlags(rootCmd)
	shopStore = nil
}

func useTestStore(t *testing.T) {
	t.Helper()
	catalog, err := store.NewMemoryCatalog([]domain.Product{
		{ID: "P1", Name: "Product One", Price: decimal.RequireFromString("100.00")},
		{ID: "P2", Name: "Product Two", Price: decimal.RequireFromString("12.50")},
	})
	require.NoError(t, err)
	shopStore, err = store.New(catalog)
	require.NoError(t, err)
	t.Cleanup(resetCLI)
}

func run(args ...string) (string, error) {
	return captureOutput(func() error {
		rootCmd.SetArgs(args)
		defer resetFlags(rootCmd)
		return rootCmd.Execute()
	})
}

func TestCartCheckoutFlow(t *testing.T) {
	useTestStore(t)

	out, err := run("cart", "add", "P1", "--quantity", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "P1 | Product One | 2 x 100.00 = 200.00")

	out, err = run("cart", "totals")
	require.NoError(t, err)
	assert.Contains(t, out, "total:    200.00")

	out, err = run("checkout")
	require.NoError(t, err)
	var order domain.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Equal(t, "200.00", order.FinalAmount.StringFixed(2))

	out, err = run("cart")
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")

	out, err = run("order", order.ID)
	require.NoError(t, err)
	assert.Contains(t, out, order.ID)

	out, err = run("orders")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestCheckoutWithGeneratedCode(t *testing.T) {
	useTestStore(t)

	out, err := run("admin", "generate-code")
	require.NoError(t, err)
	var dc domain.DiscountCode
	require.NoError(t, json.Unmarshal([]byte(out), &dc))

	out, err = run("discount", "validate", dc.Code)
	require.NoError(t, err)
	assert.Equal(t, "valid\n", out)

	_, err = run("cart", "add", "P2", "--quantity", "4")
	require.NoError(t, err)

	out, err = run("checkout", "--code", dc.Code)
	require.NoError(t, err)
	var order domain.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Equal(t, "5.00", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, "45.00", order.FinalAmount.StringFixed(2))

	out, err = run("discount", "validate", dc.Code)
	require.NoError(t, err)
	assert.Equal(t, "invalid\n", out)

	out, err = run("admin", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "items purchased: 4")
	assert.Contains(t, out, "discount amount: 5.00")
	assert.Contains(t, out, dc.Code+" | 10% | used")
}

func TestCartUpdateRemoveClear(t *testing.T) {
	useTestStore(t)

	_, err := run("cart", "add", "P1")
	require.NoError(t, err)
	_, err = run("cart", "add", "P2")
	require.NoError(t, err)

	out, err := run("cart", "update", "P1", "0")
	require.NoError(t, err)
	assert.NotContains(t, out, "P1")

	out, err = run("cart", "remove", "P1")
	require.NoError(t, err)
	assert.Contains(t, out, "P2")

	out, err = run("cart", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cart is empty")
}

func TestProductsListAndExport(t *testing.T) {
	useTestStore(t)

	out, err := run("products", "--sort-by", "price")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "P2 |"))

	out, err = run("products", "--output", "json", "--min-price", "50")
	require.NoError(t, err)
	var products []domain.Product
	require.NoError(t, json.Unmarshal([]byte(out), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "P1", products[0].ID)

	path := filepath.Join(t.TempDir(), "export.json")
	_, err = run("products", "export", "--file", path)
	require.NoError(t, err)
	c, err := store.NewFileCatalog(path)
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "P2")
	assert.NoError(t, err)

	out, err = run("product", "P1")
	require.NoError(t, err)
	assert.Contains(t, out, "Product One")
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	useTestStore(t)

	_, err := run("cart", "add", "P1", "--quantity", "5")
	require.NoError(t, err)
	out, err := run("cart", "add", "P1")
	require.NoError(t, err)
	assert.Contains(t, out, "6 x 100.00")
}

func TestProductsPriceFlagsHaveNoDefault(t *testing.T) {
	useTestStore(t)

	out, err := run("products", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--min-price")
	assert.NotContains(t, out, `(default "0")`)

	out, err = run("products", "--max-price", "20")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "P2 |"))

	_, err = run("products", "--min-price", "abc")
	assert.Error(t, err)
}
