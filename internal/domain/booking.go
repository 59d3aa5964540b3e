package domain

import (
	"strings"
	"time"

	apperror "gotour/internal/errors"
)

// BookingStatus é o ciclo de vida de uma reserva.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid informa se o status é conhecido.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

// Booking representa uma reserva de passeio.
type Booking struct {
	ID            string        `json:"_id"`
	Tour          TourRef       `json:"tour"`
	Tourist       PersonRef     `json:"tourist"`
	Guide         PersonRef     `json:"guide"`
	Date          time.Time     `json:"date"`
	Slots         int           `json:"slots"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        BookingStatus `json:"status"`
	PaymentStatus string        `json:"paymentStatus,omitempty"`
	PaidAmount    *float64      `json:"paidAmount,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
}

// PaymentState é o resultado de PaymentState(): a API não expõe um campo
// de pagamento garantido, então "desconhecido" é um resultado legítimo.
type PaymentState string

const (
	PaymentUnknown PaymentState = "unknown"
	PaymentPaid    PaymentState = "paid"
	PaymentUnpaid  PaymentState = "unpaid"
)

// PaymentState só afirma pago/não pago quando a API envia paymentStatus.
// A presença de paidAmount ou totalPrice não é tratada como prova de pagamento.
func (b Booking) PaymentState() PaymentState {
	switch strings.ToLower(b.PaymentStatus) {
	case "paid", "succeeded", "completed":
		return PaymentPaid
	case "unpaid", "pending", "failed":
		return PaymentUnpaid
	}
	return PaymentUnknown
}

// BookingRequest é o payload de POST /bookings/create-booking.
type BookingRequest struct {
	TourID string    `json:"tourId"`
	Date   time.Time `json:"date"`
	Slots  int       `json:"slots"`
}

// Validate confere o formulário de reserva. maxGroupSize <= 0 desativa o limite.
func (r BookingRequest) Validate(maxGroupSize int) error {
	if strings.TrimSpace(r.TourID) == "" {
		return apperror.NewValidationError("tourId é obrigatório.")
	}
	if r.Date.IsZero() {
		return apperror.NewValidationError("Selecione uma data.")
	}
	if r.Slots < 1 {
		return apperror.NewValidationError("A reserva precisa de pelo menos 1 pessoa.")
	}
	if maxGroupSize > 0 && r.Slots > maxGroupSize {
		return apperror.NewValidationError("Número de pessoas excede o tamanho máximo do grupo.")
	}
	return nil
}
