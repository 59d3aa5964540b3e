package api

import (
	"context"
	"errors"
	"net/http"

	"gotour/internal/domain"
)

func validateAccount(a domain.Account) error {
	if a.ID == "" {
		return errors.New("usuário sem _id")
	}
	if !a.Role.Valid() {
		return errors.New("usuário " + a.ID + " com role desconhecida '" + string(a.Role) + "'")
	}
	return nil
}

// ListUsers devolve todas as contas (admin).
func (c *Client) ListUsers(ctx context.Context) ([]domain.Account, error) {
	return fetch(ctx, c, http.MethodGet, "/users", nil, each(validateAccount))
}

// BlockUser marca uma conta como bloqueada (admin).
func (c *Client) BlockUser(ctx context.Context, id string) (domain.Account, error) {
	body := map[string]bool{"isBlocked": true}
	return fetch(ctx, c, http.MethodPatch, "/users/"+segment(id), body, validateAccount)
}
