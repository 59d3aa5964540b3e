package api

import (
	"context"
	"errors"
	"net/http"

	"gotour/internal/domain"
)

// CreatePaymentIntent pede ao backend o client secret do processador de pagamento.
func (c *Client) CreatePaymentIntent(ctx context.Context, bookingID string) (domain.PaymentIntent, error) {
	body := map[string]string{"bookingId": bookingID}
	return fetch(ctx, c, http.MethodPost, "/payments/create-payment-intent", body, func(p domain.PaymentIntent) error {
		if p.ClientSecret == "" {
			return errors.New("clientSecret ausente")
		}
		return nil
	})
}

// ConfirmPayment informa ao backend o ID da transação aprovada pelo processador.
func (c *Client) ConfirmPayment(ctx context.Context, conf domain.PaymentConfirmation) error {
	return c.do(ctx, http.MethodPost, "/payments/confirm", conf, nil)
}
