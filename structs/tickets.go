package structs

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CustomerDetails struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Phone string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// OpenTicketRequest binds an existing customer by id or finds/creates one from details.
type OpenTicketRequest struct {
	Number     int              `json:"number" validate:"required,gte=1"`
	CustomerID *uuid.UUID       `json:"customer_id,omitempty"`
	Customer   *CustomerDetails `json:"customer,omitempty" validate:"omitempty"`
}

type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// SetQuantityRequest accepts zero and negatives, which remove the item.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

type AssignCustomerRequest struct {
	CustomerID *uuid.UUID `json:"customer_id"`
}

type CloseTicketRequest struct {
	Method   string           `json:"method" validate:"required,oneof=cash card pix"`
	Tendered *decimal.Decimal `json:"tendered,omitempty"`
}

type BoardSlot struct {
	Number   int             `json:"number"`
	Open     bool            `json:"open"`
	TicketID *uuid.UUID      `json:"ticket_id,omitempty"`
	Items    int             `json:"items"`
	Total    decimal.Decimal `json:"total"`
}
