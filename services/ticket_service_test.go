package services

import (
	"comandas_server/comanda"
	"comandas_server/structs"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenReusesCustomerByPhone(t *testing.T) {
	sm, _ := newTestManager()
	ctx := context.Background()

	details := &structs.CustomerDetails{Name: "Ana", Phone: " 11988887777 "}
	first, err := sm.TicketService.Open(ctx, &structs.OpenTicketRequest{Number: 1, Customer: details})
	require.NoError(t, err)
	require.NotNil(t, first.CustomerID)

	second, err := sm.TicketService.Open(ctx, &structs.OpenTicketRequest{Number: 2, Customer: &structs.CustomerDetails{Name: "Ana Paula", Phone: "11988887777"}})
	require.NoError(t, err)
	require.NotNil(t, second.CustomerID)
	assert.Equal(t, *first.CustomerID, *second.CustomerID)

	customers, err := sm.CustomerService.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}

func TestOpenWithUnknownCustomerID(t *testing.T) {
	sm, _ := newTestManager()
	missing := uuid.New()

	_, err := sm.TicketService.Open(context.Background(), &structs.OpenTicketRequest{Number: 1, CustomerID: &missing})
	assert.True(t, comanda.IsNotFound(err))
}

func TestBoardListsEveryNumber(t *testing.T) {
	sm, _ := newTestManager()
	ctx := context.Background()

	product, err := sm.ProductService.Create(ctx, &structs.ProductRequest{Name: "Cerveja", Category: "Bebidas", Price: decimal.RequireFromString("8.50")})
	require.NoError(t, err)
	_, err = sm.TicketService.Open(ctx, &structs.OpenTicketRequest{Number: 4})
	require.NoError(t, err)
	_, err = sm.TicketService.AddItem(ctx, 4, product.ID)
	require.NoError(t, err)
	_, err = sm.TicketService.AddItem(ctx, 4, product.ID)
	require.NoError(t, err)

	board, err := sm.TicketService.Board(ctx)
	require.NoError(t, err)
	require.Len(t, board, 10)
	for _, slot := range board {
		if slot.Number == 4 {
			assert.True(t, slot.Open)
			assert.Equal(t, 1, slot.Items)
			assert.True(t, slot.Total.Equal(decimal.RequireFromString("17.00")))
			continue
		}
		assert.False(t, slot.Open, "slot %d", slot.Number)
	}
}

func TestCloseRejectsUnknownMethod(t *testing.T) {
	sm, _ := newTestManager()
	_, err := sm.TicketService.Close(context.Background(), 1, &structs.CloseTicketRequest{Method: "voucher"})
	assert.ErrorIs(t, err, comanda.ErrInvalidMethod)
}

func TestAddItemUnknownProduct(t *testing.T) {
	sm, _ := newTestManager()
	ctx := context.Background()
	_, err := sm.TicketService.Open(ctx, &structs.OpenTicketRequest{Number: 1})
	require.NoError(t, err)

	_, err = sm.TicketService.AddItem(ctx, 1, uuid.New())
	assert.True(t, comanda.IsNotFound(err))
}

func TestProductServiceRejectsNegativePrice(t *testing.T) {
	sm, _ := newTestManager()
	_, err := sm.ProductService.Create(context.Background(), &structs.ProductRequest{Name: "X", Category: "Y", Price: decimal.RequireFromString("-1")})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestProductServiceListWithCacheDisabled(t *testing.T) {
	sm, _ := newTestManager()
	ctx := context.Background()
	inactive := false

	_, err := sm.ProductService.Create(ctx, &structs.ProductRequest{Name: "Cerveja", Category: "Bebidas", Price: decimal.RequireFromString("8.50")})
	require.NoError(t, err)
	_, err = sm.ProductService.Create(ctx, &structs.ProductRequest{Name: "Vinho", Category: "Bebidas", Price: decimal.RequireFromString("30"), Active: &inactive})
	require.NoError(t, err)

	active := true
	list, err := sm.ProductService.List(ctx, structs.ProductFilter{Active: &active})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Cerveja", list[0].Name)
	assert.False(t, sm.CacheService.Enabled())
}
