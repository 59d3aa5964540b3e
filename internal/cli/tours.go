package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gotour/internal/access"
	"gotour/internal/domain"
)

func newToursCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tours",
		Short: "Catálogo de passeios",
	}
	cmd.AddCommand(
		newToursListCmd(st),
		newToursMineCmd(st),
		newToursShowCmd(st),
		newToursCategoriesCmd(st),
		newTourWriteCmd(st, false),
		newTourWriteCmd(st, true),
		newToursDeleteCmd(st),
	)
	return cmd
}

func newToursListCmd(st *state) *cobra.Command {
	var q domain.TourQuery
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lista passeios com busca, categoria e ordenação por preço",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		order, err := domain.ParseSortOrder(sortFlag)
		if err != nil {
			return err
		}
		q.Sort = order

		tours, err := app.Tours.ListTours(cmd.Context(), q)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tours) == 0 {
			fmt.Fprintln(out, "Nenhum passeio encontrado.")
			return nil
		}

		tw := newTable(out, "ID", "TÍTULO", "CATEGORIA", "PONTO DE ENCONTRO", "PREÇO", "DURAÇÃO")
		for _, t := range tours {
			row(tw, t.ID, t.Title, t.Category, t.MeetingPoint, money(t.Price), fmt.Sprintf("%gh", t.Duration))
		}
		return tw.Flush()
	})
	cmd.Flags().StringVarP(&q.Search, "query", "q", "", "busca por título ou ponto de encontro")
	cmd.Flags().StringVarP(&q.Category, "category", "c", domain.CategoryAll, "categoria ("+strings.Join(domain.Categories, ", ")+")")
	cmd.Flags().StringVar(&sortFlag, "sort", "", "ordenação por preço: asc ou desc")
	return cmd
}

func newToursMineCmd(st *state) *cobra.Command {
	var q domain.TourQuery

	cmd := &cobra.Command{
		Use:   "mine",
		Short: "Passeios publicados por você (guide ou admin)",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleGuide, domain.RoleAdmin)); err != nil {
			return err
		}

		tours, err := app.Tours.MyTours(cmd.Context(), q)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(tours) == 0 {
			fmt.Fprintln(out, "Você ainda não publicou passeios.")
			return nil
		}

		tw := newTable(out, "ID", "TÍTULO", "CATEGORIA", "PREÇO", "GRUPO")
		for _, t := range tours {
			row(tw, t.ID, t.Title, t.Category, money(t.Price), fmt.Sprintf("%d", t.MaxGroupSize))
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		hint := "gotour tours update <id>"
		if app.Session.CurrentAccess().Role == domain.RoleAdmin {
			hint += "  |  gotour tours delete <id>"
		}
		fmt.Fprintf(out, "\n%s\n", hint)
		return nil
	})
	cmd.Flags().StringVarP(&q.Search, "query", "q", "", "busca por título ou ponto de encontro")
	return cmd
}

func newToursShowCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Detalhes de um passeio e suas avaliações",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		tour, reviews, err := app.Tours.GetTour(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  [%s]\n", tour.Title, tour.Category)
		fmt.Fprintf(out, "%s\n\n", tour.Description)
		fmt.Fprintf(out, "Encontro: %s\n", tour.MeetingPoint)
		if tour.Guide.ID != "" {
			fmt.Fprintf(out, "Guia:     %s\n", tour.Guide.Label(tour.Guide.ID))
		}
		fmt.Fprintf(out, "Preço:    %s por pessoa\n", money(tour.Price))
		fmt.Fprintf(out, "Duração:  %gh  ·  grupo de até %d\n", tour.Duration, tour.MaxGroupSize)

		fmt.Fprintf(out, "\nAvaliações (%d)\n", len(reviews))
		for _, r := range reviews {
			fmt.Fprintf(out, "  %s  %s: %s\n", strings.Repeat("★", r.Rating), r.Author.Label("Anônimo"), r.Comment)
		}
		return nil
	})
	return cmd
}

func newToursCategoriesCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Categorias com passeios publicados",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		cats, err := app.Tours.Categories(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cats, "\n"))
		return nil
	})
	return cmd
}

// newTourWriteCmd cria "create" ou, com update, "update <id>".
func newTourWriteCmd(st *state, update bool) *cobra.Command {
	var in domain.TourInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publica um passeio (guide ou admin)",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use = "update <id>"
		cmd.Short = "Edita um passeio (guide ou admin)"
		cmd.Args = cobra.ExactArgs(1)
	}

	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleGuide, domain.RoleAdmin)); err != nil {
			return err
		}

		var (
			tour domain.Tour
			err  error
		)
		if update {
			tour, err = app.Tours.UpdateTour(cmd.Context(), args[0], in)
		} else {
			tour, err = app.Tours.CreateTour(cmd.Context(), in)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Passeio %s salvo (%s).\n", tour.Title, tour.ID)
		return nil
	})

	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "título")
	f.StringVar(&in.Description, "description", "", "descrição")
	f.StringVar(&in.Category, "category", "Adventure", "categoria")
	f.StringVar(&in.MeetingPoint, "meeting-point", "", "ponto de encontro")
	f.Float64Var(&in.Price, "price", 0, "preço por pessoa")
	f.Float64Var(&in.Duration, "duration", 0, "duração em horas")
	f.IntVar(&in.MaxGroupSize, "max-group", 10, "tamanho máximo do grupo")
	f.StringSliceVar(&in.Images, "image", nil, "URL de imagem (repetível)")
	return cmd
}

func newToursDeleteCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove um passeio (admin)",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleAdmin)); err != nil {
			return err
		}
		if err := app.Tours.DeleteTour(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Passeio %s removido.\n", args[0])
		return nil
	})
	return cmd
}

func newReviewsCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reviews",
		Short: "Avaliações de passeios",
	}

	var in domain.ReviewInput
	add := &cobra.Command{
		Use:   "add <tour-id>",
		Short: "Avalia um passeio (tourist)",
		Args:  cobra.ExactArgs(1),
	}
	add.RunE = st.run(func(cmd *cobra.Command, args []string, app *App) error {
		if err := app.Gate(cmd.Context(), access.Require(domain.RoleTourist)); err != nil {
			return err
		}
		in.TourID = args[0]
		if _, err := app.Tours.CreateReview(cmd.Context(), in); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Avaliação publicada.")
		return nil
	})
	add.Flags().IntVar(&in.Rating, "rating", 5, "nota de 1 a 5")
	add.Flags().StringVar(&in.Comment, "comment", "", "comentário")

	cmd.AddCommand(add)
	return cmd
}
