package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/domain"
)

func TestOrderLedger_AppendListFind(t *testing.T) {
	l := NewOrderLedger()
	assert.Empty(t, l.List())

	assert.Equal(t, 1, l.Append(domain.Order{ID: "o1", Items: []domain.CartLineItem{{Product: prodA, Quantity: 1}}}))
	assert.Equal(t, 2, l.Append(domain.Order{ID: "o2"}))

	list := l.List()
	require.Len(t, list, 2)
	assert.Equal(t, "o1", list[0].ID)
	assert.Equal(t, "o2", list[1].ID)

	o, err := l.FindByID("o1")
	require.NoError(t, err)
	o.Items[0].Quantity = 42

	again, err := l.FindByID("o1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity, "ledger orders must not be reachable through results")

	_, err = l.FindByID("nope")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, domain.KindOrder, nf.Kind)
}
