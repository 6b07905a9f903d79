package features

import (
	"comandas_server/comanda"
	"comandas_server/repository"
	"comandas_server/structs/tables"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type lifecycleContext struct {
	store    *repository.MemoryStore
	machine  *comanda.Machine
	products map[string]comanda.Product
	result   comanda.CloseResult
	err      error
}

func (c *lifecycleContext) reset() {
	c.store = repository.NewMemoryStore()
	c.machine = comanda.NewMachine(c.store, comanda.Options{
		Logger: gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error")))),
	})
	c.products = make(map[string]comanda.Product)
	c.result = comanda.CloseResult{}
	c.err = nil
}

func (c *lifecycleContext) theCatalogHasPriced(name, price string) error {
	p := &tables.Product{ID: uuid.New(), Name: name, Category: "Bebidas", Price: decimal.RequireFromString(price), Active: true}
	if err := c.store.CreateProduct(context.Background(), p); err != nil {
		return err
	}
	c.products[name] = p.ToComanda()
	return nil
}

func (c *lifecycleContext) ticketIsOpenedWithNoCustomer(number int) error {
	_, err := c.machine.Open(context.Background(), number, nil)
	return err
}

func (c *lifecycleContext) iAddToTicket(name string, number int) error {
	p, ok := c.products[name]
	if !ok {
		return fmt.Errorf("unknown product %q", name)
	}
	_, err := c.machine.AddOrIncrementItem(context.Background(), number, p)
	return err
}

func (c *lifecycleContext) theStoreFailsTheNextQuantityUpdate() error {
	c.store.FailNext("update line item quantity", errors.New("connection reset by peer"))
	return nil
}

func (c *lifecycleContext) iSetTheQuantityOfOnTicketTo(name string, number, qty int) error {
	t, err := c.machine.Ticket(context.Background(), number)
	if err != nil {
		return err
	}
	item := t.FindItemByProduct(c.products[name].ID)
	if item == nil {
		return fmt.Errorf("%q is not on ticket %d", name, number)
	}
	_, c.err = c.machine.SetItemQuantity(context.Background(), number, item.ID, qty)
	return nil
}

func (c *lifecycleContext) iCloseTicketPayingWith(number int, method, tendered string) error {
	amount := decimal.RequireFromString(tendered)
	c.result, c.err = c.machine.Close(context.Background(), number, comanda.PaymentMethod(method), &amount)
	return nil
}

func (c *lifecycleContext) ticketTotals(number int, total string) error {
	t, err := c.machine.Ticket(context.Background(), number)
	if err != nil {
		return err
	}
	if !t.Total().Equal(decimal.RequireFromString(total)) {
		return fmt.Errorf("expected total %s, got %s", total, t.Total().StringFixed(2))
	}
	return nil
}

func (c *lifecycleContext) ticketHasLineWithQuantity(number, lines, qty int) error {
	t, err := c.machine.Ticket(context.Background(), number)
	if err != nil {
		return err
	}
	if len(t.Items) != lines {
		return fmt.Errorf("expected %d lines, got %d", lines, len(t.Items))
	}
	if t.Items[0].Quantity != qty {
		return fmt.Errorf("expected quantity %d, got %d", qty, t.Items[0].Quantity)
	}
	return nil
}

func (c *lifecycleContext) theCloseSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("expected close to succeed, got %v", c.err)
	}
	if c.result.Ticket.Status != comanda.StatusClosed {
		return fmt.Errorf("expected closed ticket, got %s", c.result.Ticket.Status)
	}
	return nil
}

func (c *lifecycleContext) theRecordedPaymentIs(amount string) error {
	closed, err := c.store.ClosedTickets(context.Background(), time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	if err != nil {
		return err
	}
	if len(closed) != 1 || len(closed[0].Payments) != 1 {
		return errors.New("expected exactly one closed ticket with one payment")
	}
	if got := closed[0].Payments[0].Amount; !got.Equal(decimal.RequireFromString(amount)) {
		return fmt.Errorf("expected payment %s, got %s", amount, got.StringFixed(2))
	}
	return nil
}

func (c *lifecycleContext) theChangeIs(change string) error {
	if !c.result.Settlement.Change.Equal(decimal.RequireFromString(change)) {
		return fmt.Errorf("expected change %s, got %s", change, c.result.Settlement.Change.StringFixed(2))
	}
	return nil
}

func (c *lifecycleContext) ticketCanBeOpenedAgain(number int) error {
	_, err := c.machine.Open(context.Background(), number, nil)
	return err
}

func (c *lifecycleContext) theCloseFailsBecauseTheTicketIsEmpty() error {
	var empty *comanda.EmptyTicketError
	if !errors.As(c.err, &empty) {
		return fmt.Errorf("expected EmptyTicketError, got %v", c.err)
	}
	return nil
}

func (c *lifecycleContext) theCloseFailsBecauseThePaymentIsInsufficient() error {
	var insufficient *comanda.InsufficientPaymentError
	if !errors.As(c.err, &insufficient) {
		return fmt.Errorf("expected InsufficientPaymentError, got %v", c.err)
	}
	return nil
}

func (c *lifecycleContext) ticketIsStillOpen(number int) error {
	t, err := c.machine.Ticket(context.Background(), number)
	if err != nil {
		return err
	}
	if !t.IsOpen() {
		return fmt.Errorf("ticket %d is %s", number, t.Status)
	}
	return nil
}

func (c *lifecycleContext) openingTicketAgainIsAConflict(number int) error {
	_, err := c.machine.Open(context.Background(), number, nil)
	var conflict *comanda.ConflictError
	if !errors.As(err, &conflict) {
		return fmt.Errorf("expected ConflictError, got %v", err)
	}
	return nil
}

func (c *lifecycleContext) theChangeIsReverted() error {
	var reverted *comanda.RevertedError
	if !errors.As(c.err, &reverted) {
		return fmt.Errorf("expected RevertedError, got %v", c.err)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	lc := &lifecycleContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		lc.reset()
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^the catalog has "([^"]*)" priced (\d+\.\d{2})$`, lc.theCatalogHasPriced)
	ctx.Step(`^ticket (\d+) is opened with no customer$`, lc.ticketIsOpenedWithNoCustomer)
	ctx.Step(`^the store fails the next quantity update$`, lc.theStoreFailsTheNextQuantityUpdate)

	// When steps
	ctx.Step(`^I add "([^"]*)" to ticket (\d+)$`, lc.iAddToTicket)
	ctx.Step(`^I set the quantity of "([^"]*)" on ticket (\d+) to (-?\d+)$`, lc.iSetTheQuantityOfOnTicketTo)
	ctx.Step(`^I close ticket (\d+) paying (cash|card|pix) with (\d+\.\d{2})$`, lc.iCloseTicketPayingWith)

	// Then steps
	ctx.Step(`^ticket (\d+) totals (\d+\.\d{2})$`, lc.ticketTotals)
	ctx.Step(`^ticket (\d+) has (\d+) lines? with quantity (\d+)$`, lc.ticketHasLineWithQuantity)
	ctx.Step(`^the close succeeds$`, lc.theCloseSucceeds)
	ctx.Step(`^the recorded payment is (\d+\.\d{2})$`, lc.theRecordedPaymentIs)
	ctx.Step(`^the change is (\d+\.\d{2})$`, lc.theChangeIs)
	ctx.Step(`^ticket (\d+) can be opened again$`, lc.ticketCanBeOpenedAgain)
	ctx.Step(`^the close fails because the ticket is empty$`, lc.theCloseFailsBecauseTheTicketIsEmpty)
	ctx.Step(`^the close fails because the payment is insufficient$`, lc.theCloseFailsBecauseThePaymentIsInsufficient)
	ctx.Step(`^ticket (\d+) is still open$`, lc.ticketIsStillOpen)
	ctx.Step(`^opening ticket (\d+) again is a conflict$`, lc.openingTicketAgainIsAConflict)
	ctx.Step(`^the change is reverted$`, lc.theChangeIsReverted)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"ticket_lifecycle.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
