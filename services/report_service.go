package services

import (
	"comandas_server/comanda"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/shopspring/decimal"
)

const (
	noTopProduct    = "Nenhum"
	unnamedCustomer = "Sem nome"
	csvDateLayout   = "02/01/2006"
)

var salesCSVHeader = []string{
	"Comanda", "Cliente", "Telefone", "Item", "Categoria", "Quantidade",
	"Valor Unit", "Total Item", "Metodo Pgto", "Valor Pgto", "Data Fechamento",
}

type ReportService struct {
	logger    *gecho.Logger
	store     ReportStore
	tickets   comanda.Repository
	products  ProductStore
	customers CustomerStore
	location  *time.Location
	now       func() time.Time
}

func NewReportService(logger *gecho.Logger, store ReportStore, tickets comanda.Repository, products ProductStore, customers CustomerStore) *ReportService {
	return &ReportService{
		logger:    logger,
		store:     store,
		tickets:   tickets,
		products:  products,
		customers: customers,
		location:  time.Local,
		now:       time.Now,
	}
}

func (rs *ReportService) Location() *time.Location {
	return rs.location
}

func (rs *ReportService) Sales(ctx context.Context, from, to time.Time) (*structs.SalesReport, error) {
	tickets, err := rs.store.ClosedTickets(ctx, from, to)
	if err != nil {
		rs.logger.Error("Failed to load closed tickets", gecho.Field("error", err))
		return nil, err
	}
	report := BuildSalesReport(from, to, tickets)
	return &report, nil
}

// BuildSalesReport aggregates tickets closed in the period. Sales are the sum of payments;
// the best seller is the product with the highest quantity, ties going to the name first
// in alphabetical order.
func BuildSalesReport(from, to time.Time, tickets []tables.Ticket) structs.SalesReport {
	report := structs.SalesReport{
		From:          from,
		To:            to,
		TotalSales:    decimal.Zero,
		AverageTicket: decimal.Zero,
		TopProduct:    noTopProduct,
		ByMethod:      make(map[string]decimal.Decimal),
	}

	quantities := make(map[string]int)
	for i := range tickets {
		t := &tickets[i]
		report.ClosedTickets++
		for _, p := range t.Payments {
			report.TotalSales = report.TotalSales.Add(p.Amount)
			report.ByMethod[p.Method] = report.ByMethod[p.Method].Add(p.Amount)
		}
		for _, item := range t.Items {
			quantities[item.ProductName] += item.Quantity
			report.ItemsSold += item.Quantity
		}
	}

	for name, qty := range quantities {
		if qty > report.TopProductQty || (qty == report.TopProductQty && name < report.TopProduct) {
			report.TopProduct = name
			report.TopProductQty = qty
		}
	}

	if report.ClosedTickets > 0 {
		report.AverageTicket = report.TotalSales.Div(decimal.NewFromInt(int64(report.ClosedTickets))).Round(2)
	}
	return report
}

// WriteSalesCSV writes one row per item and payment of every ticket closed in the period.
func (rs *ReportService) WriteSalesCSV(ctx context.Context, w io.Writer, from, to time.Time) error {
	tickets, err := rs.store.ClosedTickets(ctx, from, to)
	if err != nil {
		return err
	}
	return WriteSalesCSV(w, tickets, rs.location)
}

func WriteSalesCSV(w io.Writer, tickets []tables.Ticket, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(salesCSVHeader); err != nil {
		return err
	}

	for i := range tickets {
		t := &tickets[i]
		name := unnamedCustomer
		if t.Customer != nil && t.Customer.Name != "" {
			name = t.Customer.Name
		}
		phone := t.Customer.PhoneOrEmpty()
		closed := ""
		if t.ClosedAt != nil {
			closed = t.ClosedAt.In(loc).Format(csvDateLayout)
		}

		for _, item := range t.Items {
			for _, p := range t.Payments {
				row := []string{
					strconv.Itoa(t.Number),
					name,
					phone,
					item.ProductName,
					item.Category,
					strconv.Itoa(item.Quantity),
					item.UnitPrice.StringFixed(2),
					comanda.LineTotal(item.Quantity, item.UnitPrice).StringFixed(2),
					p.Method,
					p.Amount.StringFixed(2),
					closed,
				}
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write ticket %d: %w", t.Number, err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// Dashboard summarizes the current state of the bar.
func (rs *ReportService) Dashboard(ctx context.Context) (*structs.DashboardStats, error) {
	open, err := rs.tickets.ListOpenTickets(ctx)
	if err != nil {
		return nil, err
	}
	products, err := rs.products.CountActiveProducts(ctx)
	if err != nil {
		return nil, err
	}
	customers, err := rs.customers.CountCustomers(ctx)
	if err != nil {
		return nil, err
	}

	now := rs.now().In(rs.location)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, rs.location)
	today, err := rs.store.ClosedTickets(ctx, startOfDay, now)
	if err != nil {
		return nil, err
	}

	return &structs.DashboardStats{
		OpenTickets:    len(open),
		ActiveProducts: products,
		Customers:      customers,
		RevenueToday:   BuildSalesReport(startOfDay, now, today).TotalSales,
	}, nil
}
