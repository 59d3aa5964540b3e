package api

import (
	"context"
	"errors"
	"net/http"

	"gotour/internal/domain"
)

func validateReview(r domain.Review) error {
	if r.ID == "" {
		return errors.New("review sem _id")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("review " + r.ID + " com nota fora de 1..5")
	}
	return nil
}

// ListReviews devolve as avaliações de um passeio.
func (c *Client) ListReviews(ctx context.Context, tourID string) ([]domain.Review, error) {
	return fetch(ctx, c, http.MethodGet, "/reviews/"+segment(tourID), nil, each(validateReview))
}

// CreateReview publica uma avaliação.
func (c *Client) CreateReview(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	return fetch(ctx, c, http.MethodPost, "/reviews", in, validateReview)
}
