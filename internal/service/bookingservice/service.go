package bookingservice

import (
	"context"
	"strings"
	"time"

	"gotour/internal/access"
	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
)

// BookingAPI é o subconjunto de internal/api usado por reservas e pagamentos.
type BookingAPI interface {
	GetTour(ctx context.Context, id string) (domain.Tour, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	GetBooking(ctx context.Context, id string) (domain.Booking, error)
	CreateBooking(ctx context.Context, req domain.BookingRequest) (domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error)
	CreatePaymentIntent(ctx context.Context, bookingID string) (domain.PaymentIntent, error)
	ConfirmPayment(ctx context.Context, conf domain.PaymentConfirmation) error
}

// AccessSource fornece a decisão de acesso da sessão atual.
type AccessSource interface {
	CurrentAccess() domain.Access
}

var (
	anyone   = access.Authenticated()
	tourists = access.Require(domain.RoleTourist)
	managers = access.Require(domain.RoleGuide, domain.RoleAdmin)
)

// Service coordena reservas e o fluxo de pagamento do turista.
type Service struct {
	api    BookingAPI
	access AccessSource
	logger logger.Logger
	now    func() time.Time
}

// NewService cria uma nova instância do Service.
func NewService(api BookingAPI, src AccessSource, log logger.Logger) *Service {
	return &Service{api: api, access: src, logger: log, now: time.Now}
}

// ListBookings devolve as reservas visíveis para a sessão.
func (s *Service) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	if err := anyone.Check(s.access.CurrentAccess()); err != nil {
		return nil, err
	}
	return s.api.ListBookings(ctx)
}

// GetBooking devolve uma reserva.
func (s *Service) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	if err := anyone.Check(s.access.CurrentAccess()); err != nil {
		return domain.Booking{}, err
	}
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, apperror.NewValidationError("O ID da reserva é obrigatório.")
	}
	return s.api.GetBooking(ctx, id)
}

// Book cria uma reserva pendente para o turista. A data não pode estar no passado
// e o número de pessoas respeita o tamanho máximo do grupo.
func (s *Service) Book(ctx context.Context, req domain.BookingRequest) (domain.Booking, error) {
	if err := tourists.Check(s.access.CurrentAccess()); err != nil {
		return domain.Booking{}, err
	}
	if err := req.Validate(0); err != nil {
		return domain.Booking{}, err
	}

	today := truncateDay(s.now())
	if truncateDay(req.Date).Before(today) {
		return domain.Booking{}, apperror.NewValidationError("A data do passeio não pode estar no passado.")
	}

	tour, err := s.api.GetTour(ctx, req.TourID)
	if err != nil {
		return domain.Booking{}, err
	}
	if err := req.Validate(tour.MaxGroupSize); err != nil {
		return domain.Booking{}, err
	}

	booking, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		return domain.Booking{}, err
	}

	s.logger.Info("Reserva criada.", map[string]interface{}{
		"booking_id": booking.ID,
		"tour_id":    req.TourID,
		"slots":      req.Slots,
	})
	return booking, nil
}

// UpdateStatus confirma ou cancela uma reserva (guide ou admin).
func (s *Service) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) (domain.Booking, error) {
	if err := managers.Check(s.access.CurrentAccess()); err != nil {
		return domain.Booking{}, err
	}
	if strings.TrimSpace(id) == "" {
		return domain.Booking{}, apperror.NewValidationError("O ID da reserva é obrigatório.")
	}
	if status != domain.BookingConfirmed && status != domain.BookingCancelled {
		return domain.Booking{}, apperror.NewValidationError("status deve ser confirmed ou cancelled.")
	}

	booking, err := s.api.UpdateBookingStatus(ctx, id, status)
	if err != nil {
		return domain.Booking{}, err
	}
	s.logger.Info("Status da reserva atualizado.", map[string]interface{}{"booking_id": id, "status": status})
	return booking, nil
}

// StartPayment pede o client secret para pagar uma reserva pendente do turista.
func (s *Service) StartPayment(ctx context.Context, bookingID string) (domain.PaymentIntent, error) {
	if err := tourists.Check(s.access.CurrentAccess()); err != nil {
		return domain.PaymentIntent{}, err
	}
	if strings.TrimSpace(bookingID) == "" {
		return domain.PaymentIntent{}, apperror.NewValidationError("O ID da reserva é obrigatório.")
	}

	booking, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return domain.PaymentIntent{}, err
	}
	if booking.Status == domain.BookingCancelled {
		return domain.PaymentIntent{}, apperror.NewConflictError("a reserva foi cancelada.")
	}
	if booking.PaymentState() == domain.PaymentPaid {
		return domain.PaymentIntent{}, apperror.NewConflictError("a reserva já está paga.")
	}

	return s.api.CreatePaymentIntent(ctx, bookingID)
}

// ConfirmPayment registra a transação aprovada pelo processador de pagamento.
func (s *Service) ConfirmPayment(ctx context.Context, bookingID, transactionID string) error {
	if err := tourists.Check(s.access.CurrentAccess()); err != nil {
		return err
	}
	if strings.TrimSpace(bookingID) == "" || strings.TrimSpace(transactionID) == "" {
		return apperror.NewValidationError("reserva e transação são obrigatórias.")
	}

	conf := domain.PaymentConfirmation{BookingID: bookingID, TransactionID: transactionID}
	if err := s.api.ConfirmPayment(ctx, conf); err != nil {
		return err
	}
	s.logger.Info("Pagamento confirmado.", map[string]interface{}{"booking_id": bookingID, "transaction_id": transactionID})
	return nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
