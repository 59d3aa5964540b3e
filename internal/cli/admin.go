package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"gotour/internal/access"
	"gotour/internal/domain"
)

func newUsersCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Administração de contas (admin)",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista todas as contas",
		Args:  cobra.NoArgs,
	}
	list.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleAdmin)); err != nil {
			return err
		}
		users, err := app.Admin.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		tw := newTable(cmd.OutOrStdout(), "ID", "NOME", "EMAIL", "ROLE", "BLOQUEADO")
		for _, u := range users {
			row(tw, u.ID, u.Name, u.Email, u.Role, u.IsBlocked)
		}
		return tw.Flush()
	})

	block := &cobra.Command{
		Use:   "block <user-id>",
		Short: "Bloqueia uma conta",
		Args:  cobra.ExactArgs(1),
	}
	block.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleAdmin)); err != nil {
			return err
		}
		acc, err := app.Admin.BlockUser(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Conta %s bloqueada.\n", acc.Email)
		return nil
	})

	cmd.AddCommand(list, block)
	return cmd
}

func newDashboardCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Painel da role atual e seus links",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Authenticated()); err != nil {
			return err
		}

		acc := app.Session.CurrentAccess()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Painel: %s\n\n", access.DashboardFor(acc))
		for _, l := range access.LinksFor(acc) {
			fmt.Fprintf(out, "  %-14s %s\n", l.Name, l.Href)
		}
		fmt.Fprintln(out)

		if access.DashboardFor(acc) == access.DashboardAdmin {
			sum, err := app.Admin.Summarize(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Contas: %d (bloqueadas: %d)\n", sum.Total, sum.Blocked)
			for _, r := range domain.Roles {
				fmt.Fprintf(out, "  %-8s %d\n", r, sum.ByRole[r])
			}
			return nil
		}

		bookings, err := app.Bookings.ListBookings(cmd.Context())
		if err != nil {
			return err
		}
		counts := make(map[domain.BookingStatus]int)
		for _, b := range bookings {
			counts[b.Status]++
		}
		fmt.Fprintf(out, "Reservas: %d (pendentes: %d, confirmadas: %d, canceladas: %d)\n",
			len(bookings), counts[domain.BookingPending], counts[domain.BookingConfirmed], counts[domain.BookingCancelled])
		return nil
	})
	return cmd
}
