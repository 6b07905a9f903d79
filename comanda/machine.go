package comanda

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultMaxNumber = 100

type Options struct {
	MaxNumber    int
	WriteTimeout time.Duration
	Clock        func() time.Time
	// Publish receives every state a ticket goes through, including rollbacks.
	Publish func(Ticket)
	Logger  *gecho.Logger
}

// CloseResult is what a successful close reports back.
type CloseResult struct {
	Ticket     Ticket     `json:"ticket"`
	Settlement Settlement `json:"settlement"`
}

// Machine drives the ticket lifecycle. Mutations on the same number run one at a time,
// in the order they acquire the number; different numbers never block each other.
type Machine struct {
	repo Repository
	opts Options

	mu       sync.Mutex
	sessions map[int]*session
}

type session struct {
	sem     chan struct{}
	ctl     *Controller
	retired bool
}

func NewMachine(repo Repository, opts Options) *Machine {
	if opts.MaxNumber <= 0 {
		opts.MaxNumber = DefaultMaxNumber
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = gecho.NewDefaultLogger()
	}
	return &Machine{
		repo:     repo,
		opts:     opts,
		sessions: make(map[int]*session),
	}
}

func (m *Machine) MaxNumber() int {
	return m.opts.MaxNumber
}

func (m *Machine) validNumber(number int) error {
	if number < 1 || number > m.opts.MaxNumber {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidNumber, number, m.opts.MaxNumber)
	}
	return nil
}

// acquire waits for exclusive use of number. A session retired while waiting is skipped
// so the caller always works on the current one.
func (m *Machine) acquire(ctx context.Context, number int) (*session, func(), error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		m.mu.Lock()
		s, ok := m.sessions[number]
		if !ok {
			s = &session{sem: make(chan struct{}, 1)}
			m.sessions[number] = s
		}
		m.mu.Unlock()

		select {
		case s.sem <- struct{}{}:
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}

		if s.retired {
			<-s.sem
			continue
		}
		return s, func() { <-s.sem }, nil
	}
}

// retire drops a session so the next caller for its number starts fresh.
// Must be called while holding the session.
func (m *Machine) retire(number int, s *session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.retired = true
	if m.sessions[number] == s {
		delete(m.sessions, number)
	}
}

// load makes sure s holds the open ticket for number.
func (m *Machine) load(ctx context.Context, number int, s *session) error {
	if s.ctl != nil {
		return nil
	}
	t, err := m.repo.GetTicketByNumber(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to load ticket %d: %w", number, err)
	}
	if t == nil || !t.IsOpen() {
		return fmt.Errorf("ticket %d: %w", number, ErrTicketNotOpen)
	}
	s.ctl = NewController(*t, m.opts.Publish)
	return nil
}

func (m *Machine) writeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.opts.WriteTimeout > 0 {
		return context.WithTimeout(ctx, m.opts.WriteTimeout)
	}
	return ctx, func() {}
}

// Open creates a ticket for number. It fails with *ConflictError when the number is taken.
func (m *Machine) Open(ctx context.Context, number int, customerID *uuid.UUID) (Ticket, error) {
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	if s.ctl != nil {
		if cur := s.ctl.State(); cur.IsOpen() {
			return Ticket{}, &ConflictError{Number: number}
		}
	}

	existing, err := m.repo.GetTicketByNumber(ctx, number)
	if err != nil {
		return Ticket{}, fmt.Errorf("failed to check ticket %d: %w", number, err)
	}
	if existing != nil && existing.IsOpen() {
		s.ctl = NewController(*existing, m.opts.Publish)
		return Ticket{}, &ConflictError{Number: number}
	}

	wctx, cancel := m.writeCtx(ctx)
	defer cancel()
	created, err := m.repo.CreateTicket(wctx, number, customerID)
	if err != nil {
		if IsConflict(err) {
			return Ticket{}, &ConflictError{Number: number}
		}
		return Ticket{}, fmt.Errorf("failed to open ticket %d: %w", number, err)
	}

	s.ctl = NewController(*created, m.opts.Publish)
	if m.opts.Publish != nil {
		m.opts.Publish(created.Clone())
	}
	m.opts.Logger.Debug("Ticket opened", gecho.Field("number", number), gecho.Field("ticket_id", created.ID))
	return created.Clone(), nil
}

// Ticket returns the current state of the open ticket holding number.
func (m *Machine) Ticket(ctx context.Context, number int) (Ticket, error) {
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	if err := m.load(ctx, number, s); err != nil {
		return Ticket{}, err
	}
	return s.ctl.State(), nil
}

// Reload replaces the local state of number with a fresh read from the repository.
func (m *Machine) Reload(ctx context.Context, number int) (Ticket, error) {
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	s.ctl = nil
	if err := m.load(ctx, number, s); err != nil {
		if errors.Is(err, ErrTicketNotOpen) {
			m.retire(number, s)
		}
		return Ticket{}, err
	}
	return s.ctl.State(), nil
}

// OpenTickets lists every open ticket as the repository sees it.
func (m *Machine) OpenTickets(ctx context.Context) ([]Ticket, error) {
	tickets, err := m.repo.ListOpenTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open tickets: %w", err)
	}
	return tickets, nil
}

// AddOrIncrementItem puts product on the ticket. A product already on the ticket has its
// quantity raised by one; otherwise a new line with quantity 1 is inserted at the current price.
func (m *Machine) AddOrIncrementItem(ctx context.Context, number int, product Product) (Ticket, error) {
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	if !product.Active {
		return Ticket{}, fmt.Errorf("%s: %w", product.Name, ErrProductInactive)
	}
	if product.Price.IsNegative() {
		return Ticket{}, fmt.Errorf("product %s has a negative price", product.Name)
	}

	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	if err := m.load(ctx, number, s); err != nil {
		return Ticket{}, err
	}

	current := s.ctl.State()
	if existing := current.FindItemByProduct(product.ID); existing != nil {
		itemID, qty := existing.ID, existing.Quantity+1
		return m.applyOptimistic(ctx, number, s, "increment item", func(t *Ticket) error {
			return t.ApplyItemQuantity(itemID, qty)
		}, func(ctx context.Context) error {
			return m.repo.UpdateLineItemQuantity(ctx, itemID, qty)
		})
	}

	wctx, cancel := m.writeCtx(ctx)
	defer cancel()
	item, err := m.repo.AddLineItem(wctx, current.ID, product.ID, 1, product.Price)
	if err != nil {
		// the insert may have landed; read it back on the next call
		s.ctl = nil
		return current, fmt.Errorf("failed to add %s to ticket %d: %w", product.Name, number, err)
	}
	if item.ProductName == "" {
		item.ProductName = product.Name
	}

	t, err := s.ctl.Commit(func(t *Ticket) error { return t.AppendItem(*item) })
	if err != nil {
		return current, err
	}
	m.opts.Logger.Debug("Item added", gecho.Field("number", number), gecho.Field("product_id", product.ID))
	return t, nil
}

// SetItemQuantity changes the quantity of an item. Quantities below 1 remove the item.
func (m *Machine) SetItemQuantity(ctx context.Context, number int, itemID uuid.UUID, quantity int) (Ticket, error) {
	if quantity < 1 {
		return m.RemoveItem(ctx, number, itemID)
	}
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	if err := m.load(ctx, number, s); err != nil {
		return Ticket{}, err
	}
	return m.applyOptimistic(ctx, number, s, "update quantity", func(t *Ticket) error {
		return t.ApplyItemQuantity(itemID, quantity)
	}, func(ctx context.Context) error {
		return m.repo.UpdateLineItemQuantity(ctx, itemID, quantity)
	})
}

func (m *Machine) RemoveItem(ctx context.Context, number int, itemID uuid.UUID) (Ticket, error) {
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	if err := m.load(ctx, number, s); err != nil {
		return Ticket{}, err
	}
	return m.applyOptimistic(ctx, number, s, "remove item", func(t *Ticket) error {
		return t.RemoveItem(itemID)
	}, func(ctx context.Context) error {
		return m.repo.DeleteLineItem(ctx, itemID)
	})
}

// AssignCustomer binds (or with nil, unbinds) a customer to the ticket.
func (m *Machine) AssignCustomer(ctx context.Context, number int, customerID *uuid.UUID) (Ticket, error) {
	if err := m.validNumber(number); err != nil {
		return Ticket{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return Ticket{}, err
	}
	defer release()

	if err := m.load(ctx, number, s); err != nil {
		return Ticket{}, err
	}
	ticketID := s.ctl.State().ID
	return m.applyOptimistic(ctx, number, s, "assign customer", func(t *Ticket) error {
		if customerID == nil {
			t.CustomerID = nil
			return nil
		}
		id := *customerID
		t.CustomerID = &id
		return nil
	}, func(ctx context.Context) error {
		return m.repo.AssignCustomer(ctx, ticketID, customerID)
	})
}

func (m *Machine) applyOptimistic(ctx context.Context, number int, s *session, op string, mutate func(*Ticket) error, write func(context.Context) error) (Ticket, error) {
	t, err := s.ctl.Apply(ctx, op, func(t *Ticket) error {
		if !t.IsOpen() {
			return ErrTicketNotOpen
		}
		return mutate(t)
	}, func(ctx context.Context) error {
		wctx, cancel := m.writeCtx(ctx)
		defer cancel()
		return write(wctx)
	})
	if err != nil {
		var reverted *RevertedError
		if errors.As(err, &reverted) {
			m.opts.Logger.Warn("Ticket mutation reverted",
				gecho.Field("number", number),
				gecho.Field("op", op),
				gecho.Field("error", reverted.Err),
			)
		}
		return t, err
	}
	m.opts.Logger.Debug("Ticket mutated", gecho.Field("number", number), gecho.Field("op", op))
	return t, nil
}

// Close settles the ticket and frees its number. It only reports success once the
// repository has confirmed the close; on any failure the ticket stays open as it was.
func (m *Machine) Close(ctx context.Context, number int, method PaymentMethod, tendered *decimal.Decimal) (CloseResult, error) {
	if err := m.validNumber(number); err != nil {
		return CloseResult{}, err
	}
	s, release, err := m.acquire(ctx, number)
	if err != nil {
		return CloseResult{}, err
	}
	defer release()

	if err := m.load(ctx, number, s); err != nil {
		return CloseResult{}, err
	}

	t := s.ctl.State()
	if !t.IsOpen() {
		return CloseResult{}, ErrTicketNotOpen
	}

	settlement, err := Settle(method, t.Total(), tendered)
	if err != nil {
		var empty *EmptyTicketError
		if errors.As(err, &empty) {
			return CloseResult{}, &EmptyTicketError{Number: number}
		}
		return CloseResult{}, err
	}

	closedAt := m.opts.Clock()
	wctx, cancel := m.writeCtx(ctx)
	defer cancel()
	payments := []PaymentInput{{Method: settlement.Method, Amount: settlement.Amount}}
	if err := m.repo.CloseTicket(wctx, t.ID, closedAt, payments); err != nil {
		s.ctl = nil
		return CloseResult{}, fmt.Errorf("failed to close ticket %d: %w", number, err)
	}

	t.Status = StatusClosed
	t.ClosedAt = &closedAt
	if m.opts.Publish != nil {
		m.opts.Publish(t.Clone())
	}
	m.retire(number, s)

	m.opts.Logger.Info("Ticket closed",
		gecho.Field("number", number),
		gecho.Field("method", string(method)),
		gecho.Field("amount", settlement.Amount.StringFixed(2)),
	)
	return CloseResult{Ticket: t, Settlement: settlement}, nil
}
