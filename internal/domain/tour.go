package domain

import (
	"strings"

	apperror "gotour/internal/errors"
)

// Categorias exibidas no filtro do catálogo. "All" desativa o filtro.
const CategoryAll = "All"

var Categories = []string{CategoryAll, "Adventure", "Food", "History", "Art", "Nature"}

// Tour representa um passeio publicado por um guia.
type Tour struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	MeetingPoint string    `json:"meetingPoint"`
	Price        float64   `json:"price"`
	Duration     float64   `json:"duration"` // horas
	MaxGroupSize int       `json:"maxGroupSize"`
	Images       []string  `json:"images,omitempty"`
	Guide        PersonRef `json:"guide"`
}

// TourInput é o payload de criação/edição de um passeio.
type TourInput struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	MeetingPoint string   `json:"meetingPoint"`
	Price        float64  `json:"price"`
	Duration     float64  `json:"duration"`
	MaxGroupSize int      `json:"maxGroupSize"`
	Images       []string `json:"images,omitempty"`
}

// Validate aplica as mesmas regras do formulário de criação de passeio.
func (t TourInput) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return apperror.NewValidationError("O título do passeio é obrigatório.")
	}
	if strings.TrimSpace(t.MeetingPoint) == "" {
		return apperror.NewValidationError("O ponto de encontro é obrigatório.")
	}
	if strings.TrimSpace(t.Description) == "" {
		return apperror.NewValidationError("A descrição é obrigatória.")
	}
	if t.Price < 1 {
		return apperror.NewValidationError("O preço deve ser no mínimo 1.")
	}
	if t.Duration < 1 {
		return apperror.NewValidationError("A duração deve ser no mínimo 1 hora.")
	}
	if t.MaxGroupSize < 1 {
		return apperror.NewValidationError("O tamanho do grupo deve ser no mínimo 1.")
	}
	return nil
}

// TourQuery descreve a busca local sobre a lista de passeios.
type TourQuery struct {
	Search   string
	Category string
	Sort     SortOrder
	GuideID  string // vazio = todos os guias
}

// SortOrder ordena por preço.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder aceita "", "asc" e "desc".
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortNone:
		return SortNone, nil
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return SortNone, apperror.NewValidationError("ordenação deve ser 'asc' ou 'desc'.")
}
