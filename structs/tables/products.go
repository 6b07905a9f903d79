package tables

import (
	"comandas_server/comanda"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	tableName struct{}        `bun:"table:products,alias:p"`
	ID        uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Name      string          `bun:"name,notnull" json:"name"`
	Category  string          `bun:"category,notnull" json:"category"`
	Price     decimal.Decimal `bun:"price,type:numeric(10,2),notnull" json:"price"`
	Active    bool            `bun:"active,notnull,default:true" json:"active"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

func (p *Product) ToComanda() comanda.Product {
	return comanda.Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price,
		Active:   p.Active,
	}
}
