package comanda

import (
	"github.com/shopspring/decimal"
)

// LineTotal is quantity × unit price.
func LineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Total sums the line totals of items. An empty slice totals zero.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item.Quantity, item.UnitPrice))
	}
	return total
}

// Change is what is handed back for a cash tender. It never goes below zero.
func Change(total, tendered decimal.Decimal) decimal.Decimal {
	if tendered.LessThanOrEqual(total) {
		return decimal.Zero
	}
	return tendered.Sub(total)
}

// Settlement describes how a ticket was paid.
type Settlement struct {
	Method   PaymentMethod   `json:"method"`
	Total    decimal.Decimal `json:"total"`
	Amount   decimal.Decimal `json:"amount"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
}

// Settle validates a payment against total. The settled amount is always the total;
// change is reported but never recorded. A nil tendered amount is an exact tender.
func Settle(method PaymentMethod, total decimal.Decimal, tendered *decimal.Decimal) (Settlement, error) {
	if !method.Valid() {
		return Settlement{}, ErrInvalidMethod
	}
	if !total.IsPositive() {
		return Settlement{}, &EmptyTicketError{}
	}

	s := Settlement{
		Method:   method,
		Total:    total,
		Amount:   total,
		Tendered: total,
		Change:   decimal.Zero,
	}

	if method != MethodCash || tendered == nil {
		return s, nil
	}

	if tendered.LessThan(total) {
		return Settlement{}, &InsufficientPaymentError{Total: total, Tendered: *tendered}
	}
	s.Tendered = *tendered
	s.Change = Change(total, *tendered)
	return s, nil
}
