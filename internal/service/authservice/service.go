package authservice

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
)

const minPasswordLen = 6

// AuthAPI é o contrato da camada REST (internal/api) usado por este serviço.
type AuthAPI interface {
	Login(ctx context.Context, creds domain.Credentials) (domain.LoginResult, error)
	Register(ctx context.Context, reg domain.Registration) error
}

// SessionManager é o contrato do gerenciador de sessão (internal/session).
type SessionManager interface {
	Login(ctx context.Context, token string, user domain.User) error
	Logout(ctx context.Context)
	CurrentAccess() domain.Access
	User() (domain.User, bool)
}

// Service autentica contra a API e entrega o resultado ao gerenciador de sessão.
type Service struct {
	api     AuthAPI
	session SessionManager
	logger  logger.Logger
}

// NewService cria uma nova instância do Service.
func NewService(api AuthAPI, session SessionManager, log logger.Logger) *Service {
	return &Service{api: api, session: session, logger: log}
}

// Login troca email e senha por uma sessão autenticada.
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.User{}, apperror.NewUnauthorizedError("Email e senha são obrigatórios.")
	}

	res, err := s.api.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		// 404 vira 401 para não revelar quais emails existem.
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.User{}, apperror.NewUnauthorizedError("Credenciais inválidas.")
		}
		return domain.User{}, err
	}

	if err := s.session.Login(ctx, res.AccessToken, res.User); err != nil {
		return domain.User{}, err
	}

	return res.User, nil
}

// Register cria a conta. Admins só são criados pelo backend.
func (s *Service) Register(ctx context.Context, reg domain.Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)

	if reg.Name == "" {
		return apperror.NewValidationError("O nome é obrigatório.")
	}
	if _, err := mail.ParseAddress(reg.Email); err != nil {
		return apperror.NewValidationError("Email inválido.")
	}
	if len(reg.Password) < minPasswordLen {
		return apperror.NewValidationError("A senha deve ter pelo menos 6 caracteres.")
	}
	if reg.Role == "" {
		reg.Role = domain.RoleTourist
	}
	if reg.Role != domain.RoleTourist && reg.Role != domain.RoleGuide {
		return apperror.NewValidationError("Cadastro permitido apenas como tourist ou guide.")
	}

	if err := s.api.Register(ctx, reg); err != nil {
		return err
	}

	s.logger.Info("Conta criada.", map[string]interface{}{"email": reg.Email, "role": reg.Role})
	return nil
}

// Logout encerra a sessão local. Sempre bem-sucedido.
func (s *Service) Logout(ctx context.Context) {
	s.session.Logout(ctx)
}

// Whoami devolve o usuário da sessão atual.
func (s *Service) Whoami() (domain.User, domain.Access, error) {
	access := s.session.CurrentAccess()
	user, ok := s.session.User()
	if !ok || !access.Authenticated {
		return domain.User{}, access, apperror.NewUnauthorizedError("nenhuma sessão ativa.")
	}
	return user, access, nil
}
