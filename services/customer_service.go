package services

import (
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CustomerService struct {
	logger *gecho.Logger
	store  CustomerStore
}

func NewCustomerService(logger *gecho.Logger, store CustomerStore) *CustomerService {
	return &CustomerService{logger: logger, store: store}
}

// List matches search against name and phone; an empty search lists everyone.
func (cs *CustomerService) List(ctx context.Context, search string) ([]tables.Customer, error) {
	return cs.store.ListCustomers(ctx, strings.TrimSpace(search))
}

func (cs *CustomerService) Get(ctx context.Context, id uuid.UUID) (*tables.Customer, error) {
	return cs.store.GetCustomer(ctx, id)
}

func (cs *CustomerService) Create(ctx context.Context, req *structs.CustomerRequest) (*tables.Customer, error) {
	c := &tables.Customer{
		ID:    uuid.New(),
		Name:  strings.TrimSpace(req.Name),
		Phone: normalizePhone(req.Phone),
	}
	if err := cs.store.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}
	cs.logger.Debug("Customer created", gecho.Field("customer_id", c.ID))
	return c, nil
}

func (cs *CustomerService) Update(ctx context.Context, id uuid.UUID, req *structs.CustomerRequest) (*tables.Customer, error) {
	c, err := cs.store.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(req.Name)
	c.Phone = normalizePhone(req.Phone)
	if err := cs.store.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (cs *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	return cs.store.DeleteCustomer(ctx, id)
}

func normalizePhone(phone string) *string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	return &phone
}
