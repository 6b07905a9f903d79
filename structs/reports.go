package structs

import (
	"time"

	"github.com/shopspring/decimal"
)

type SalesReport struct {
	From          time.Time                  `json:"from"`
	To            time.Time                  `json:"to"`
	TotalSales    decimal.Decimal            `json:"total_sales"`
	ClosedTickets int                        `json:"closed_tickets"`
	AverageTicket decimal.Decimal            `json:"average_ticket"`
	TopProduct    string                     `json:"top_product"`
	TopProductQty int                        `json:"top_product_quantity"`
	ItemsSold     int                        `json:"items_sold"`
	ByMethod      map[string]decimal.Decimal `json:"by_method"`
}

type DashboardStats struct {
	OpenTickets    int             `json:"open_tickets"`
	ActiveProducts int             `json:"active_products"`
	Customers      int             `json:"customers"`
	RevenueToday   decimal.Decimal `json:"revenue_today"`
}
