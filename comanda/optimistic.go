package comanda

import (
	"context"
	"sync"
)

// Controller owns the local state of one ticket and applies mutations ahead of their writes.
type Controller struct {
	mu      sync.Mutex
	state   Ticket
	publish func(Ticket)
}

// NewController starts from initial. publish, if set, receives every state the controller
// exposes, including the restored one after a rollback.
func NewController(initial Ticket, publish func(Ticket)) *Controller {
	return &Controller{state: initial.Clone(), publish: publish}
}

func (c *Controller) State() Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Replace installs t as the authoritative state, e.g. after a fresh read.
func (c *Controller) Replace(t Ticket) {
	c.set(t)
}

// Commit applies a mutation whose write already succeeded.
func (c *Controller) Commit(mutate func(*Ticket) error) (Ticket, error) {
	next := c.State()
	if err := mutate(&next); err != nil {
		return Ticket{}, err
	}
	c.set(next)
	return next.Clone(), nil
}

// Apply publishes the result of mutate before write runs. If write fails the previous
// state is restored exactly and a *RevertedError wrapping the write error is returned.
// Errors from mutate itself leave the state untouched and are returned as is.
func (c *Controller) Apply(ctx context.Context, op string, mutate func(*Ticket) error, write func(context.Context) error) (Ticket, error) {
	snapshot := c.State()

	next := snapshot.Clone()
	if err := mutate(&next); err != nil {
		return snapshot, err
	}
	c.set(next)

	if err := write(ctx); err != nil {
		c.set(snapshot)
		return snapshot.Clone(), &RevertedError{Op: op, Err: err}
	}
	return next.Clone(), nil
}

func (c *Controller) set(t Ticket) {
	c.mu.Lock()
	c.state = t.Clone()
	c.mu.Unlock()

	if c.publish != nil {
		c.publish(t.Clone())
	}
}
