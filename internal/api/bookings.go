package api

import (
	"context"
	"errors"
	"net/http"

	"gotour/internal/domain"
)

func validateBooking(b domain.Booking) error {
	if b.ID == "" {
		return errors.New("reserva sem _id")
	}
	if !b.Status.Valid() {
		return errors.New("reserva " + b.ID + " com status desconhecido '" + string(b.Status) + "'")
	}
	return nil
}

// ListBookings devolve as reservas visíveis para a sessão (turista: as suas;
// guia: as dos seus passeios; admin: todas).
func (c *Client) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return fetch(ctx, c, http.MethodGet, "/bookings", nil, each(validateBooking))
}

// GetBooking busca uma reserva pelo ID.
func (c *Client) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	return fetch(ctx, c, http.MethodGet, "/bookings/"+segment(id), nil, validateBooking)
}

// CreateBooking inicia uma reserva; o pagamento vem depois.
func (c *Client) CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	return fetch(ctx, c, http.MethodPost, "/bookings/create-booking", req, validateBooking)
}

// UpdateBookingStatus confirma ou cancela uma reserva.
func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	body := map[string]domain.BookingStatus{"status": status}
	return fetch(ctx, c, http.MethodPatch, "/bookings/"+segment(id)+"/status", body, validateBooking)
}
