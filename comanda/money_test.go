package comanda_test

import (
	"comandas_server/comanda"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestTotalIsExactDecimalSum(t *testing.T) {
	items := []comanda.LineItem{
		{Quantity: 3, UnitPrice: dec("0.10")},
		{Quantity: 1, UnitPrice: dec("0.20")},
		{Quantity: 7, UnitPrice: dec("8.35")},
	}
	assert.True(t, comanda.Total(items).Equal(dec("58.95")), "got %s", comanda.Total(items))
	assert.True(t, comanda.Total(nil).IsZero())
}

func TestSettleCash(t *testing.T) {
	total := dec("42.30")

	t.Run("one cent short", func(t *testing.T) {
		_, err := comanda.Settle(comanda.MethodCash, total, decPtr("42.29"))
		var insufficient *comanda.InsufficientPaymentError
		require.ErrorAs(t, err, &insufficient)
		assert.True(t, insufficient.Missing().Equal(dec("0.01")))
	})

	t.Run("exact", func(t *testing.T) {
		s, err := comanda.Settle(comanda.MethodCash, total, decPtr("42.30"))
		require.NoError(t, err)
		assert.True(t, s.Change.IsZero())
		assert.True(t, s.Amount.Equal(total))
	})

	t.Run("five over", func(t *testing.T) {
		s, err := comanda.Settle(comanda.MethodCash, total, decPtr("47.30"))
		require.NoError(t, err)
		assert.True(t, s.Change.Equal(dec("5.00")))
		assert.True(t, s.Amount.Equal(total), "settled amount is the total, not the tender")
		assert.True(t, s.Tendered.Equal(dec("47.30")))
	})

	t.Run("no tender means exact", func(t *testing.T) {
		s, err := comanda.Settle(comanda.MethodCash, total, nil)
		require.NoError(t, err)
		assert.True(t, s.Tendered.Equal(total))
		assert.True(t, s.Change.IsZero())
	})
}

func TestSettleNonCashIgnoresTender(t *testing.T) {
	for _, method := range []comanda.PaymentMethod{comanda.MethodCard, comanda.MethodPix} {
		s, err := comanda.Settle(method, dec("10.00"), decPtr("3.00"))
		require.NoError(t, err, method)
		assert.True(t, s.Tendered.Equal(dec("10.00")), method)
		assert.True(t, s.Change.IsZero(), method)
	}
}

func TestSettleRejects(t *testing.T) {
	_, err := comanda.Settle(comanda.MethodCash, decimal.Zero, nil)
	var empty *comanda.EmptyTicketError
	assert.ErrorAs(t, err, &empty)

	_, err = comanda.Settle(comanda.PaymentMethod("cheque"), dec("1.00"), nil)
	assert.True(t, errors.Is(err, comanda.ErrInvalidMethod))
}
