package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"gotour/internal/domain"
)

// Login troca credenciais por {accessToken, user}.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error) {
	return fetch(ctx, c, http.MethodPost, "/auth/login", creds, validateLoginResult)
}

// Register cria uma conta. O usuário precisa fazer login em seguida.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", reg, nil)
}

func validateLoginResult(r domain.LoginResult) error {
	if strings.TrimSpace(r.AccessToken) == "" {
		return errors.New("accessToken ausente")
	}
	return r.User.Validate()
}
