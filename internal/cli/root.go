// Package cli define os comandos cobra da tourctl.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gotour/config"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
)

var version = "dev" // definido via ldflags no build

// Loader monta o App usado por um comando.
type Loader func(ctx context.Context, out io.Writer) (*App, error)

// DefaultLoader lê o ambiente (já com o .env carregado) e monta o App.
func DefaultLoader(ctx context.Context, out io.Writer) (*App, error) {
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Debug("Configurações carregadas.", map[string]interface{}{
		"env":     cfg.Environment,
		"backend": cfg.SessionBackend,
		"api":     cfg.APIBaseURL,
	})
	return NewApp(ctx, cfg, log, out)
}

// state compartilha o App entre o hook do root e os subcomandos.
type state struct {
	load Loader
	app  *App
}

// run adapta fn para RunE e fecha o App ao final, com ou sem erro.
func (st *state) run(fn func(cmd *cobra.Command, args []string, app *App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		app := st.app
		defer func() {
			if err := app.Close(); err != nil {
				app.log.Error("Falha ao encerrar recursos.", err)
			}
		}()
		return fn(cmd, args, app)
	}
}

// NewRootCommand cria a árvore de comandos. load é chamado uma vez antes de
// qualquer subcomando executável.
func NewRootCommand(load Loader) *cobra.Command {
	st := &state{load: load}

	root := &cobra.Command{
		Use:   "tourctl",
		Short: "Cliente de linha de comando da plataforma de passeios",
		Long: `tourctl mantém uma sessão autenticada (turista, guia ou admin) e
expõe o catálogo de passeios, reservas, pagamentos e administração.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app, err := st.load(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			st.app = app
			return nil
		},
	}

	root.AddCommand(
		newLoginCmd(st),
		newLogoutCmd(st),
		newRegisterCmd(st),
		newWhoamiCmd(st),
		newDashboardCmd(st),
		newToursCmd(st),
		newReviewsCmd(st),
		newBookingsCmd(st),
		newUsersCmd(st),
	)
	return root
}

// Execute roda a CLI e converte erros em código de saída.
func Execute(ctx context.Context) int {
	root := NewRootCommand(DefaultLoader)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	category, msg := apperror.Describe(err)
	if category == "UNKNOWN_ERROR" {
		msg = err.Error()
	}
	fmt.Fprintf(w, "❌ [%s] %s\n", category, msg)
}
