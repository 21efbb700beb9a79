package domain

// RoleAdmin роль администратора
const RoleAdmin = "admin"

// Principal аутентифицированный пользователь, полученный от identity-провайдера
type Principal struct {
	ID      string
	Role    string
	IsAdmin bool
}
