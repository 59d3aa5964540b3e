package domain

// PaymentIntent é a resposta de /payments/create-payment-intent.
// O client secret só é repassado ao widget do processador de pagamento.
type PaymentIntent struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentConfirmation é o payload de /payments/confirm.
type PaymentConfirmation struct {
	BookingID     string `json:"bookingId"`
	TransactionID string `json:"transactionId"`
}
