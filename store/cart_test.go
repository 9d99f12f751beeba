package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/domain"
)

var (
	prodA = domain.Product{ID: "A", Name: "Alpha", Price: decimal.RequireFromString("10.00")}
	prodB = domain.Product{ID: "B", Name: "Beta", Price: decimal.RequireFromString("2.50")}
	prodC = domain.Product{ID: "C", Name: "Gamma", Price: decimal.RequireFromString("7.25")}
)

func TestCartLedger_AddMergesAndKeepsOrder(t *testing.T) {
	c := NewCartLedger()

	_, err := c.Add(prodA, 1)
	require.NoError(t, err)
	_, err = c.Add(prodB, 2)
	require.NoError(t, err)
	items, err := c.Add(prodA, 4)
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Product.ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "B", items[1].Product.ID)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestCartLedger_AddRejectsNonPositive(t *testing.T) {
	c := NewCartLedger()
	for _, q := range []int{0, -1} {
		_, err := c.Add(prodA, q)
		assert.True(t, domain.IsInvalidQuantityError(err))
	}
	assert.Equal(t, 0, c.Len())
}

func TestCartLedger_SetQuantity(t *testing.T) {
	t.Run("missing line", func(t *testing.T) {
		c := NewCartLedger()
		_, err := c.SetQuantity("A", 3)
		var nf *domain.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, domain.KindCartItem, nf.Kind)
	})

	for _, q := range []int{1, 2, 17, 1000} {
		t.Run("overwrite", func(t *testing.T) {
			c := NewCartLedger()
			_, _ = c.Add(prodA, 5)
			items, err := c.SetQuantity("A", q)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, q, items[0].Quantity)
		})
	}

	for _, q := range []int{0, -1, -50} {
		t.Run("non-positive removes", func(t *testing.T) {
			c := NewCartLedger()
			_, _ = c.Add(prodA, 5)
			_, _ = c.Add(prodB, 1)
			items, err := c.SetQuantity("A", q)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, "B", items[0].Product.ID)
		})
	}
}

func TestCartLedger_RemoveIsIdempotent(t *testing.T) {
	states := [][]domain.Product{
		nil,
		{prodA},
		{prodA, prodB},
		{prodB, prodA, prodC},
	}
	for _, products := range states {
		c := NewCartLedger()
		for i, p := range products {
			_, _ = c.Add(p, i+1)
		}
		before := c.Items()

		after := c.Remove("missing")
		assert.Equal(t, before, after)
	}

	c := NewCartLedger()
	_, _ = c.Add(prodA, 1)
	_, _ = c.Add(prodB, 1)
	assert.Len(t, c.Remove("A"), 1)
	assert.Len(t, c.Remove("A"), 1)
}

func TestCartLedger_ClearAndCopies(t *testing.T) {
	c := NewCartLedger()
	_, _ = c.Add(prodA, 1)

	items := c.Items()
	items[0].Quantity = 99
	assert.Equal(t, 1, c.Items()[0].Quantity, "Items must return a copy")

	cleared := c.Clear()
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared)
	assert.Equal(t, 0, c.Len())
}
