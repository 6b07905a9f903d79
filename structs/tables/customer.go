package tables

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	tableName struct{}  `bun:"table:customers,alias:c"`
	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Phone     *string   `bun:"phone,unique,nullzero" json:"phone,omitempty"` // lookup key when opening tickets
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (c *Customer) PhoneOrEmpty() string {
	if c == nil || c.Phone == nil {
		return ""
	}
	return *c.Phone
}
