package tables

import (
	"time"

	"github.com/google/uuid"
)

// Operator is a staff account allowed to use the point of sale.
type Operator struct {
	tableName    struct{}   `bun:"table:operators,alias:op"`
	ID           uuid.UUID  `json:"id" bun:"id,pk,type:uuid"`
	Username     string     `json:"username" bun:"username,unique,notnull"`
	PasswordHash string     `json:"-" bun:"password_hash,notnull"`
	Role         string     `json:"role" bun:"role,notnull,default:'operator'"`
	LastLogin    *time.Time `json:"last_login,omitempty" bun:"last_login,nullzero"`
	CreatedAt    time.Time  `json:"created_at" bun:"created_at,notnull,default:current_timestamp"`
}

const (
	RoleOperator = "operator"
	RoleAdmin    = "admin"
)
