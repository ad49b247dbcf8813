package entity

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// User usuario demo habilitado para iniciar sesión en el dashboard.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio
	Name         string
	Role         string // admin, manager
}
