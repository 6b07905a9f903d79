package repository

import (
	"comandas_server/comanda"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *MemoryStore, name, category, price string, active bool) tables.Product {
	t.Helper()
	p := tables.Product{ID: uuid.New(), Name: name, Category: category, Price: decimal.RequireFromString(price), Active: active}
	require.NoError(t, s.CreateProduct(context.Background(), &p))
	return p
}

func TestCreateTicketConflictsOnOpenNumber(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.CreateTicket(ctx, 10, nil)
	require.NoError(t, err)

	_, err = s.CreateTicket(ctx, 10, nil)
	var re *comanda.RepositoryError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, comanda.KindConflict, re.Kind)
	assert.Equal(t, "23505", re.Code)

	require.NoError(t, s.CloseTicket(ctx, first.ID, time.Now(), nil))
	_, err = s.CreateTicket(ctx, 10, nil)
	assert.NoError(t, err, "a closed ticket frees its number")
}

func TestCreateTicketUnknownCustomer(t *testing.T) {
	s := NewMemoryStore()
	missing := uuid.New()
	_, err := s.CreateTicket(context.Background(), 1, &missing)
	assert.True(t, comanda.IsConflict(err))
}

func TestGetTicketByNumberOnlyReturnsOpen(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.GetTicketByNumber(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, got)

	tk, err := s.CreateTicket(ctx, 4, nil)
	require.NoError(t, err)
	got, err = s.GetTicketByNumber(ctx, 4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tk.ID, got.ID)

	require.NoError(t, s.CloseTicket(ctx, tk.ID, time.Now(), nil))
	got, err = s.GetTicketByNumber(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLineItemsKeepInsertionOrderAndSnapshot(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a := seedProduct(t, s, "Cerveja", "Bebidas", "8.50", true)
	b := seedProduct(t, s, "Batata", "Porcoes", "22.00", true)

	tk, err := s.CreateTicket(ctx, 2, nil)
	require.NoError(t, err)
	_, err = s.AddLineItem(ctx, tk.ID, b.ID, 1, b.Price)
	require.NoError(t, err)
	_, err = s.AddLineItem(ctx, tk.ID, a.ID, 2, a.Price)
	require.NoError(t, err)

	b.Name = "Batata frita"
	require.NoError(t, s.UpdateProduct(ctx, &b))

	got, err := s.GetTicketByNumber(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Batata", got.Items[0].ProductName)
	assert.Equal(t, "Cerveja", got.Items[1].ProductName)
	assert.True(t, got.Total().Equal(decimal.RequireFromString("39.00")))
}

func TestAddLineItemRejectsSecondLineForProduct(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a := seedProduct(t, s, "Cerveja", "Bebidas", "8.50", true)

	tk, err := s.CreateTicket(ctx, 2, nil)
	require.NoError(t, err)
	_, err = s.AddLineItem(ctx, tk.ID, a.ID, 1, a.Price)
	require.NoError(t, err)

	_, err = s.AddLineItem(ctx, tk.ID, a.ID, 1, a.Price)
	var re *comanda.RepositoryError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, comanda.KindConflict, re.Kind)
	assert.Equal(t, "23505", re.Code)

	got, err := s.GetTicketByNumber(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
}

func TestItemWritesOnClosedTicketConflict(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a := seedProduct(t, s, "Cerveja", "Bebidas", "8.50", true)

	tk, err := s.CreateTicket(ctx, 2, nil)
	require.NoError(t, err)
	item, err := s.AddLineItem(ctx, tk.ID, a.ID, 1, a.Price)
	require.NoError(t, err)
	require.NoError(t, s.CloseTicket(ctx, tk.ID, time.Now(), []comanda.PaymentInput{{Method: comanda.MethodPix, Amount: a.Price}}))

	assert.True(t, comanda.IsConflict(s.UpdateLineItemQuantity(ctx, item.ID, 3)))
	assert.True(t, comanda.IsConflict(s.DeleteLineItem(ctx, item.ID)))
	assert.True(t, comanda.IsConflict(s.CloseTicket(ctx, tk.ID, time.Now(), nil)))
	assert.True(t, comanda.IsNotFound(s.DeleteLineItem(ctx, uuid.New())))
}

func TestFailNextFiresOnce(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	cause := errors.New("network down")

	s.FailNext("create ticket", cause)
	_, err := s.CreateTicket(ctx, 1, nil)
	var re *comanda.RepositoryError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, comanda.KindFailure, re.Kind)
	assert.ErrorIs(t, err, cause)

	_, err = s.CreateTicket(ctx, 1, nil)
	assert.NoError(t, err)
}

func TestClosedTicketsPeriodIsInclusive(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a := seedProduct(t, s, "Cerveja", "Bebidas", "8.50", true)
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	closeAt := func(number int, at time.Time) {
		tk, err := s.CreateTicket(ctx, number, nil)
		require.NoError(t, err)
		_, err = s.AddLineItem(ctx, tk.ID, a.ID, 1, a.Price)
		require.NoError(t, err)
		require.NoError(t, s.CloseTicket(ctx, tk.ID, at, []comanda.PaymentInput{{Method: comanda.MethodCash, Amount: a.Price}}))
	}
	closeAt(1, start)
	closeAt(2, end)
	closeAt(3, end.Add(time.Second))
	closeAt(4, start.Add(-time.Second))

	got, err := s.ClosedTickets(ctx, start, end)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Number)
	assert.Equal(t, 2, got[1].Number)
	require.Len(t, got[0].Items, 1)
	require.Len(t, got[0].Payments, 1)
}

func TestProductFilters(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	seedProduct(t, s, "Cerveja", "Bebidas", "8.50", true)
	seedProduct(t, s, "Suco de laranja", "Bebidas", "9.00", false)
	seedProduct(t, s, "Batata", "Porcoes", "22.00", true)

	active := true
	got, err := s.ListProducts(ctx, structs.ProductFilter{Category: "Bebidas", Active: &active})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Cerveja", got[0].Name)

	got, err = s.ListProducts(ctx, structs.ProductFilter{Search: "LARANJA"})
	require.NoError(t, err)
	require.Len(t, got, 1)

	n, err := s.CountActiveProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDeleteProductOnTicketConflicts(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	a := seedProduct(t, s, "Cerveja", "Bebidas", "8.50", true)
	tk, err := s.CreateTicket(ctx, 1, nil)
	require.NoError(t, err)
	_, err = s.AddLineItem(ctx, tk.ID, a.ID, 1, a.Price)
	require.NoError(t, err)

	assert.True(t, comanda.IsConflict(s.DeleteProduct(ctx, a.ID)))
}

func TestCustomerPhoneIsUnique(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	phone := "11999990000"

	require.NoError(t, s.CreateCustomer(ctx, &tables.Customer{Name: "Ana", Phone: &phone}))
	err := s.CreateCustomer(ctx, &tables.Customer{Name: "Bia", Phone: &phone})
	assert.True(t, comanda.IsConflict(err))

	found, err := s.FindCustomerByPhone(ctx, phone)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Ana", found.Name)

	none, err := s.FindCustomerByPhone(ctx, "000")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestDeleteCustomerDetachesTickets(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	c := tables.Customer{Name: "Ana"}
	require.NoError(t, s.CreateCustomer(ctx, &c))
	tk, err := s.CreateTicket(ctx, 1, &c.ID)
	require.NoError(t, err)
	require.NotNil(t, tk.CustomerID)

	require.NoError(t, s.DeleteCustomer(ctx, c.ID))
	got, err := s.GetTicketByNumber(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, got.CustomerID)
}
