package domain

import (
	"strings"
	"time"

	apperror "gotour/internal/errors"
)

// Review é uma avaliação de passeio.
type Review struct {
	ID        string    `json:"_id"`
	Tour      string    `json:"tourId"`
	Author    PersonRef `json:"userId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

// ReviewInput é o payload de POST /reviews.
type ReviewInput struct {
	TourID  string `json:"tourId"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate exige nota entre 1 e 5 e comentário preenchido.
func (r ReviewInput) Validate() error {
	if strings.TrimSpace(r.TourID) == "" {
		return apperror.NewValidationError("tourId é obrigatório.")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return apperror.NewValidationError("A nota deve estar entre 1 e 5.")
	}
	if strings.TrimSpace(r.Comment) == "" {
		return apperror.NewValidationError("O comentário não pode ser vazio.")
	}
	return nil
}
