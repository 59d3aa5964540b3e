// Package catalog filtra e ordena a lista de passeios já carregada da API.
package catalog

import (
	"sort"
	"strings"

	"gotour/internal/domain"
)

// Filter aplica busca, categoria e ordenação por preço sem alterar tours.
// Busca é case-insensitive sobre título e ponto de encontro; categoria vazia
// ou "All" não filtra; GuideID restringe aos passeios do guia; a ordenação é estável.
func Filter(tours []domain.Tour, q domain.TourQuery) []domain.Tour {
	needle := strings.ToLower(strings.TrimSpace(q.Search))
	category := strings.TrimSpace(q.Category)
	allCategories := category == "" || strings.EqualFold(category, domain.CategoryAll)

	out := make([]domain.Tour, 0, len(tours))
	for _, t := range tours {
		if needle != "" &&
			!strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.MeetingPoint), needle) {
			continue
		}
		if !allCategories && !strings.EqualFold(t.Category, category) {
			continue
		}
		if q.GuideID != "" && t.Guide.ID != q.GuideID {
			continue
		}
		out = append(out, t)
	}

	switch q.Sort {
	case domain.SortAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case domain.SortDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	}
	return out
}

// Categories devolve as categorias presentes em tours, na ordem de
// domain.Categories, seguidas das desconhecidas em ordem de aparição.
func Categories(tours []domain.Tour) []string {
	seen := make(map[string]bool, len(tours))
	for _, t := range tours {
		if t.Category != "" {
			seen[t.Category] = true
		}
	}

	out := []string{domain.CategoryAll}
	for _, c := range domain.Categories {
		if c != domain.CategoryAll && seen[c] {
			out = append(out, c)
			delete(seen, c)
		}
	}
	for _, t := range tours {
		if seen[t.Category] {
			out = append(out, t.Category)
			delete(seen, t.Category)
		}
	}
	return out
}
