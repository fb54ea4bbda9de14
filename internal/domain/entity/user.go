package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User es el actor que firma movimientos y aplicaciones para auditoría.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // bcrypt, nunca plano en dominio después de persistir
	Role         string
	Active       bool
	CreatedAt    time.Time
}
