package tourservice

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gotour/internal/access"
	"gotour/internal/catalog"
	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/cache"
	"gotour/internal/pkg/logger"
)

// toursCacheKey guarda a lista completa; filtros são aplicados depois da leitura.
const toursCacheKey = "gotour:tours:all"

// TourAPI é o subconjunto de internal/api usado pelo catálogo.
type TourAPI interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
	GetTour(ctx context.Context, id string) (domain.Tour, error)
	CreateTour(ctx context.Context, in domain.TourInput) (domain.Tour, error)
	UpdateTour(ctx context.Context, id string, in domain.TourInput) (domain.Tour, error)
	DeleteTour(ctx context.Context, id string) error
	ListReviews(ctx context.Context, tourID string) ([]domain.Review, error)
	CreateReview(ctx context.Context, in domain.ReviewInput) (domain.Review, error)
}

// AccessSource fornece a decisão de acesso e a identidade da sessão atual.
type AccessSource interface {
	CurrentAccess() domain.Access
	User() (domain.User, bool)
}

var (
	editors = access.Require(domain.RoleGuide, domain.RoleAdmin)
	admins  = access.Require(domain.RoleAdmin)
	tourist = access.Require(domain.RoleTourist)
)

// Service expõe o catálogo de passeios e suas avaliações.
type Service struct {
	api      TourAPI
	access   AccessSource
	cache    cache.Client // opcional
	cacheTTL time.Duration
	logger   logger.Logger
}

// NewService cria o serviço. cacheClient pode ser nil (sem cache).
func NewService(api TourAPI, src AccessSource, cacheClient cache.Client, cacheTTL time.Duration, log logger.Logger) *Service {
	return &Service{api: api, access: src, cache: cacheClient, cacheTTL: cacheTTL, logger: log}
}

// ListTours aplica busca, categoria e ordenação sobre a lista (cache-aside).
func (s *Service) ListTours(ctx context.Context, q domain.TourQuery) ([]domain.Tour, error) {
	all, err := s.allTours(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(all, q), nil
}

// MyTours lista os passeios do usuário logado (guide ou admin); o filtro de
// guia sempre usa o ID da sessão, ignorando q.GuideID.
func (s *Service) MyTours(ctx context.Context, q domain.TourQuery) ([]domain.Tour, error) {
	if err := editors.Check(s.access.CurrentAccess()); err != nil {
		return nil, err
	}
	user, ok := s.access.User()
	if !ok || user.UserID == "" {
		return nil, apperror.NewUnauthorizedError("Sessão sem usuário.")
	}
	q.GuideID = user.UserID
	return s.ListTours(ctx, q)
}

// Categories devolve as categorias disponíveis para filtro.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	all, err := s.allTours(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Categories(all), nil
}

// GetTour busca um passeio e suas avaliações.
func (s *Service) GetTour(ctx context.Context, id string) (domain.Tour, []domain.Review, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Tour{}, nil, apperror.NewValidationError("O ID do passeio é obrigatório.")
	}

	tour, err := s.api.GetTour(ctx, id)
	if err != nil {
		return domain.Tour{}, nil, err
	}

	reviews, err := s.api.ListReviews(ctx, id)
	if err != nil {
		// O passeio continua exibível sem avaliações.
		s.logger.Warn("Falha ao carregar avaliações.", map[string]interface{}{"tour_id": id, "error": err.Error()})
		reviews = nil
	}
	return tour, reviews, nil
}

// CreateTour publica um passeio (guide ou admin).
func (s *Service) CreateTour(ctx context.Context, in domain.TourInput) (domain.Tour, error) {
	if err := editors.Check(s.access.CurrentAccess()); err != nil {
		return domain.Tour{}, err
	}
	if err := in.Validate(); err != nil {
		return domain.Tour{}, err
	}

	tour, err := s.api.CreateTour(ctx, in)
	if err != nil {
		return domain.Tour{}, err
	}
	s.invalidate(ctx)
	return tour, nil
}

// UpdateTour edita um passeio (guide ou admin).
func (s *Service) UpdateTour(ctx context.Context, id string, in domain.TourInput) (domain.Tour, error) {
	if err := editors.Check(s.access.CurrentAccess()); err != nil {
		return domain.Tour{}, err
	}
	if strings.TrimSpace(id) == "" {
		return domain.Tour{}, apperror.NewValidationError("O ID do passeio é obrigatório.")
	}
	if err := in.Validate(); err != nil {
		return domain.Tour{}, err
	}

	tour, err := s.api.UpdateTour(ctx, id, in)
	if err != nil {
		return domain.Tour{}, err
	}
	s.invalidate(ctx)
	return tour, nil
}

// DeleteTour remove um passeio (admin).
func (s *Service) DeleteTour(ctx context.Context, id string) error {
	if err := admins.Check(s.access.CurrentAccess()); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return apperror.NewValidationError("O ID do passeio é obrigatório.")
	}

	if err := s.api.DeleteTour(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// CreateReview publica uma avaliação (tourist).
func (s *Service) CreateReview(ctx context.Context, in domain.ReviewInput) (domain.Review, error) {
	if err := tourist.Check(s.access.CurrentAccess()); err != nil {
		return domain.Review{}, err
	}
	in.Comment = strings.TrimSpace(in.Comment)
	if err := in.Validate(); err != nil {
		return domain.Review{}, err
	}
	return s.api.CreateReview(ctx, in)
}

func (s *Service) allTours(ctx context.Context) ([]domain.Tour, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, toursCacheKey)
		switch {
		case err == nil:
			var tours []domain.Tour
			if jsonErr := json.Unmarshal([]byte(cached), &tours); jsonErr == nil {
				s.logger.Debug("Lista de passeios servida do cache.", map[string]interface{}{"count": len(tours)})
				return tours, nil
			}
			s.logger.Warn("Entrada de cache inválida; recarregando da API.", nil)
		case !errors.Is(err, cache.ErrCacheMiss):
			s.logger.Warn("Cache indisponível.", map[string]interface{}{"error": err.Error()})
		}
	}

	tours, err := s.api.ListTours(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, jsonErr := json.Marshal(tours); jsonErr == nil {
			if setErr := s.cache.Set(ctx, toursCacheKey, payload, s.cacheTTL); setErr != nil {
				s.logger.Warn("Falha ao gravar cache de passeios.", map[string]interface{}{"error": setErr.Error()})
			}
		}
	}
	return tours, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, toursCacheKey); err != nil {
		s.logger.Warn("Falha ao invalidar cache de passeios.", map[string]interface{}{"error": err.Error()})
	}
}
