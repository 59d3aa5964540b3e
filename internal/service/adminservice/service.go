package adminservice

import (
	"context"
	"strings"

	"gotour/internal/access"
	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
)

// UserAPI é o subconjunto de internal/api usado pelo painel de administração.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]domain.Account, error)
	BlockUser(ctx context.Context, id string) (domain.Account, error)
}

// SessionView é o que o serviço lê da sessão atual.
type SessionView interface {
	CurrentAccess() domain.Access
	User() (domain.User, bool)
}

var admins = access.Require(domain.RoleAdmin)

// Summary conta contas por role para o painel do admin.
type Summary struct {
	Total   int
	Blocked int
	ByRole  map[domain.UserRole]int
}

// Service implementa as ações exclusivas de admin.
type Service struct {
	api     UserAPI
	session SessionView
	logger  logger.Logger
}

// NewService cria uma nova instância do Service.
func NewService(api UserAPI, session SessionView, log logger.Logger) *Service {
	return &Service{api: api, session: session, logger: log}
}

// ListUsers devolve todas as contas.
func (s *Service) ListUsers(ctx context.Context) ([]domain.Account, error) {
	if err := admins.Check(s.session.CurrentAccess()); err != nil {
		return nil, err
	}
	return s.api.ListUsers(ctx)
}

// Summarize agrega a lista de contas.
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	users, err := s.ListUsers(ctx)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{Total: len(users), ByRole: make(map[domain.UserRole]int, len(domain.Roles))}
	for _, u := range users {
		sum.ByRole[u.Role]++
		if u.IsBlocked {
			sum.Blocked++
		}
	}
	return sum, nil
}

// BlockUser bloqueia uma conta. O admin não pode bloquear a si mesmo.
func (s *Service) BlockUser(ctx context.Context, id string) (domain.Account, error) {
	if err := admins.Check(s.session.CurrentAccess()); err != nil {
		return domain.Account{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Account{}, apperror.NewValidationError("O ID do usuário é obrigatório.")
	}
	if me, ok := s.session.User(); ok && me.UserID == id {
		return domain.Account{}, apperror.NewConflictError("não é possível bloquear a própria conta.")
	}

	acc, err := s.api.BlockUser(ctx, id)
	if err != nil {
		return domain.Account{}, err
	}
	s.logger.Warn("Usuário bloqueado.", map[string]interface{}{"user_id": id})
	return acc, nil
}
