package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator" // operario de planta: tareas, stock, compras
)

// User cuenta de acceso al sistema.
type User struct {
	ID           int64
	Username     string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string // admin | operator
	CreatedAt    time.Time
}
