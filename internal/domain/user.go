package domain

import (
	"strings"

	apperror "gotour/internal/errors"
)

// UserRole é um tipo string para representar o papel do usuário na plataforma.
type UserRole string

// Conjunto fechado de papéis aceitos pela API.
const (
	RoleTourist UserRole = "tourist"
	RoleGuide   UserRole = "guide"
	RoleAdmin   UserRole = "admin"
)

// Roles lista todos os papéis válidos, na ordem usada pelos menus.
var Roles = []UserRole{RoleTourist, RoleGuide, RoleAdmin}

// Valid informa se a role pertence ao conjunto fechado.
func (r UserRole) Valid() bool {
	switch r {
	case RoleTourist, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// ParseRole converte texto livre (flags da CLI, env) em UserRole.
func ParseRole(s string) (UserRole, error) {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", apperror.NewValidationError("role deve ser tourist, guide ou admin.")
	}
	return role, nil
}

// User é a identidade do usuário autenticado, no formato devolvido por /auth/login.
type User struct {
	UserID string   `json:"userId"`
	Role   UserRole `json:"role"`
	Email  string   `json:"email"`
	Name   string   `json:"name,omitempty"`
}

// Validate garante os campos obrigatórios de uma identidade de sessão.
func (u User) Validate() error {
	if strings.TrimSpace(u.UserID) == "" {
		return apperror.NewValidationError("userId é obrigatório.")
	}
	if !u.Role.Valid() {
		return apperror.NewValidationError("role inválida: '" + string(u.Role) + "'.")
	}
	if strings.TrimSpace(u.Email) == "" {
		return apperror.NewValidationError("email é obrigatório.")
	}
	return nil
}

// DisplayName devolve o nome, ou o email quando o nome não foi informado.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Account é o registro de usuário visto pelo painel de administração (/users).
type Account struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
	IsBlocked bool     `json:"isBlocked"`
}

// Credentials é o payload de POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration é o payload de POST /auth/register.
type Registration struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

// LoginResult é o conteúdo de "data" na resposta de /auth/login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}
