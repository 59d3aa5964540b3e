package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gotour/internal/access"
	"gotour/internal/domain"
)

func newLoginCmd(st *state) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Autentica e grava a sessão local",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		in := bufio.NewReader(cmd.InOrStdin())
		out := cmd.OutOrStdout()

		if email == "" {
			fmt.Fprint(out, "Email: ")
			line, err := readLine(in)
			if err != nil {
				return err
			}
			email = line
		}

		fmt.Fprint(out, "Senha: ")
		password, err := readPassword(cmd.InOrStdin(), in)
		fmt.Fprintln(out)
		if err != nil {
			return err
		}

		user, err := app.Auth.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✅ Bem-vindo, %s (%s).\n", user.DisplayName(), user.Role)
		return nil
	})
	cmd.Flags().StringVarP(&email, "email", "e", "", "email da conta")
	return cmd
}

func newLogoutCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Encerra a sessão local",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		app.Auth.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Sessão encerrada.")
		return nil
	})
	return cmd
}

func newRegisterCmd(st *state) *cobra.Command {
	var reg domain.Registration
	var role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cria uma conta de turista ou guia",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if role != "" {
			parsed, err := domain.ParseRole(role)
			if err != nil {
				return err
			}
			reg.Role = parsed
		}

		in := bufio.NewReader(cmd.InOrStdin())
		fmt.Fprint(cmd.OutOrStdout(), "Senha: ")
		password, err := readPassword(cmd.InOrStdin(), in)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		reg.Password = password

		if err := app.Auth.Register(cmd.Context(), reg); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Conta criada. Use 'tourctl login' para entrar.")
		return nil
	})
	cmd.Flags().StringVar(&reg.Name, "name", "", "nome completo")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email")
	cmd.Flags().StringVar(&role, "role", "tourist", "tourist ou guide")
	return cmd
}

func newWhoamiCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Mostra o usuário e o acesso da sessão atual",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Session.WaitReady(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		user, acc, err := app.Auth.Whoami()
		if err != nil {
			fmt.Fprintf(out, "Estado: %s\n", acc.State)
			return err
		}

		fmt.Fprintf(out, "Usuário: %s <%s>\n", user.DisplayName(), user.Email)
		fmt.Fprintf(out, "ID:      %s\n", user.UserID)
		fmt.Fprintf(out, "Role:    %s\n", acc.Role)
		fmt.Fprintf(out, "Estado:  %s\n", acc.State)
		fmt.Fprintf(out, "Painel:  %s\n", access.DashboardFor(acc))
		return nil
	})
	return cmd
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("falha ao ler a entrada: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword usa o terminal sem eco quando disponível; caso contrário lê uma
// linha de in (pipes e testes).
func readPassword(raw io.Reader, in *bufio.Reader) (string, error) {
	if f, ok := raw.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("falha ao ler a senha: %w", err)
		}
		return string(b), nil
	}
	return readLine(in)
}
