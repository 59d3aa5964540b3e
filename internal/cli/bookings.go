package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gotour/internal/access"
	"gotour/internal/domain"
	apperror "gotour/internal/errors"
)

func newBookingsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Reservas e pagamentos",
	}
	cmd.AddCommand(
		newBookingsListCmd(st),
		newBookCmd(st),
		newBookingStatusCmd(st),
		newPayCmd(st),
		newConfirmPaymentCmd(st),
	)
	return cmd
}

func newBookingsListCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista as reservas visíveis para a sessão",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Authenticated()); err != nil {
			return err
		}

		bookings, err := app.Bookings.ListBookings(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(bookings) == 0 {
			fmt.Fprintln(out, "Nenhuma reserva.")
			return nil
		}

		tw := newTable(out, "ID", "PASSEIO", "DATA", "PESSOAS", "TOTAL", "STATUS", "PAGAMENTO", "TURISTA", "GUIA")
		for _, b := range bookings {
			row(tw, b.ID, tourLabel(b.Tour), formatDate(b.Date), b.Slots, money(b.TotalPrice), b.Status,
				paymentLabel(b), b.Tourist.Label(b.Tourist.ID), b.Guide.Label(b.Guide.ID))
		}
		return tw.Flush()
	})
	return cmd
}

func newBookCmd(st *state) *cobra.Command {
	var (
		date  string
		slots int
	)

	cmd := &cobra.Command{
		Use:   "book <tour-id>",
		Short: "Reserva um passeio (tourist)",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleTourist)); err != nil {
			return err
		}

		day, err := time.Parse(dateLayout, date)
		if err != nil {
			return apperror.NewValidationError("data deve estar no formato AAAA-MM-DD.")
		}

		b, err := app.Bookings.Book(cmd.Context(), domain.BookingRequest{TourID: args[0], Date: day, Slots: slots})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Reserva %s criada (%s). Pague com 'tourctl bookings pay %s'.\n", b.ID, b.Status, b.ID)
		return nil
	})
	cmd.Flags().StringVar(&date, "date", "", "data do passeio (AAAA-MM-DD)")
	cmd.Flags().IntVar(&slots, "slots", 1, "número de pessoas")
	return cmd
}

func newBookingStatusCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <booking-id> <confirmed|cancelled>",
		Short: "Confirma ou cancela uma reserva (guide ou admin)",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleGuide, domain.RoleAdmin)); err != nil {
			return err
		}
		b, err := app.Bookings.UpdateStatus(cmd.Context(), args[0], domain.BookingStatus(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reserva %s agora está %s.\n", b.ID, b.Status)
		return nil
	})
	return cmd
}

func newPayCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay <booking-id>",
		Short: "Inicia o pagamento de uma reserva (tourist)",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleTourist)); err != nil {
			return err
		}
		intent, err := app.Bookings.StartPayment(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Client secret: %s\n", intent.ClientSecret)
		fmt.Fprintf(out, "Depois da aprovação, rode 'tourctl bookings confirm-payment %s <transaction-id>'.\n", args[0])
		return nil
	})
	return cmd
}

func newConfirmPaymentCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm-payment <booking-id> <transaction-id>",
		Short: "Registra a transação aprovada (tourist)",
		Args:  cobra.ExactArgs(2),
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleTourist)); err != nil {
			return err
		}
		if err := app.Bookings.ConfirmPayment(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Pagamento confirmado.")
		return nil
	})
	return cmd
}
