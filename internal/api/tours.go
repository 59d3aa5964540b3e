package api

import (
	"context"
	"errors"
	"net/http"

	"gotour/internal/domain"
)

func validateTour(t domain.Tour) error {
	if t.ID == "" {
		return errors.New("tour sem _id")
	}
	if t.Title == "" {
		return errors.New("tour " + t.ID + " sem título")
	}
	return nil
}

// ListTours devolve todos os passeios publicados.
func (c *Client) ListTours(ctx context.Context) ([]domain.Tour, error) {
	return fetch(ctx, c, http.MethodGet, "/tours", nil, each(validateTour))
}

// GetTour busca um passeio pelo ID.
func (c *Client) GetTour(ctx context.Context, id string) (domain.Tour, error) {
	return fetch(ctx, c, http.MethodGet, "/tours/"+segment(id), nil, validateTour)
}

// CreateTour publica um passeio (guia ou admin).
func (c *Client) CreateTour(ctx context.Context, in domain.TourInput) (domain.Tour, error) {
	return fetch(ctx, c, http.MethodPost, "/tours", in, validateTour)
}

// UpdateTour edita um passeio existente.
func (c *Client) UpdateTour(ctx context.Context, id string, in domain.TourInput) (domain.Tour, error) {
	return fetch(ctx, c, http.MethodPatch, "/tours/"+segment(id), in, validateTour)
}

// DeleteTour remove um passeio (admin).
func (c *Client) DeleteTour(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tours/"+segment(id), nil, nil)
}
