package comanda_test

import (
	"comandas_server/comanda"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ticketWith(items ...comanda.LineItem) comanda.Ticket {
	return comanda.Ticket{ID: uuid.New(), Number: 1, Status: comanda.StatusOpen, Items: items}
}

func line(qty int, price string) comanda.LineItem {
	return comanda.LineItem{ID: uuid.New(), ProductID: uuid.New(), Quantity: qty, UnitPrice: dec(price)}
}

func TestApplyItemQuantityBelowOneRemoves(t *testing.T) {
	for _, qty := range []int{0, -1} {
		a, b := line(2, "5.00"), line(1, "3.00")

		viaQuantity := ticketWith(a, b)
		require.NoError(t, viaQuantity.ApplyItemQuantity(a.ID, qty))

		viaRemove := ticketWith(a, b)
		viaRemove.ID = viaQuantity.ID
		require.NoError(t, viaRemove.RemoveItem(a.ID))

		assert.Equal(t, viaRemove, viaQuantity, "quantity %d", qty)
		assert.True(t, viaQuantity.Total().Equal(dec("3.00")))
	}
}

func TestApplyItemQuantityUnknownItem(t *testing.T) {
	tk := ticketWith(line(1, "1.00"))
	assert.ErrorIs(t, tk.ApplyItemQuantity(uuid.New(), 3), comanda.ErrItemNotFound)
	assert.ErrorIs(t, tk.RemoveItem(uuid.New()), comanda.ErrItemNotFound)
}

func TestCloneSharesNothing(t *testing.T) {
	customer := uuid.New()
	orig := ticketWith(line(1, "2.50"))
	orig.CustomerID = &customer

	cp := orig.Clone()
	cp.Items[0].Quantity = 9
	*cp.CustomerID = uuid.New()

	assert.Equal(t, 1, orig.Items[0].Quantity)
	assert.Equal(t, customer, *orig.CustomerID)
}

func TestFindItemByProduct(t *testing.T) {
	a := line(1, "1.00")
	tk := ticketWith(a, line(2, "2.00"))

	found := tk.FindItemByProduct(a.ProductID)
	require.NotNil(t, found)
	assert.Equal(t, a.ID, found.ID)
	assert.Nil(t, tk.FindItemByProduct(uuid.New()))
}
