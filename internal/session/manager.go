// Package session mantém o estado de autenticação visível ao cliente:
// quem está logado, com qual token e qual role.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/navigation"
	"gotour/internal/pkg/logger"
	"gotour/internal/repository/sessionrepo"
)

// Repository é o contrato do espelho durável (implementado por sessionrepo.Repository).
// Load deve devolver sessionrepo.ErrNoRecord ou sessionrepo.ErrCorruptRecord
// para registros ausentes ou inutilizáveis.
type Repository interface {
	Load(ctx context.Context) (string, domain.User, error)
	Save(ctx context.Context, token string, user domain.User) error
	Purge(ctx context.Context) error
}

// TokenInspector decide se um token restaurado já expirou.
type TokenInspector interface {
	Expired(token string) (bool, error)
}

// Manager é a fonte única de "quem está logado e com qual role".
// Crie um por aplicação (ou por caso de teste) e passe-o adiante; não há singleton.
type Manager struct {
	repo      Repository
	nav       navigation.Navigator
	logger    logger.Logger
	inspector TokenInspector

	landingPath string
	loginPath   string

	// opMu serializa Initialize/Login/Logout (incluindo o I/O de storage);
	// mu protege os campos lidos por CurrentAccess e afins.
	opMu sync.Mutex
	mu   sync.RWMutex

	status domain.LoadStatus
	token  string
	user   *domain.User

	initOnce sync.Once
	ready    chan struct{}
}

// Option configura um Manager.
type Option func(*Manager)

// WithLandingPath troca o destino após login (padrão "/").
func WithLandingPath(path string) Option {
	return func(m *Manager) { m.landingPath = path }
}

// WithLoginPath troca o destino após logout (padrão "/login").
func WithLoginPath(path string) Option {
	return func(m *Manager) { m.loginPath = path }
}

// WithTokenInspector faz Initialize descartar tokens JWT expirados.
func WithTokenInspector(inspector TokenInspector) Option {
	return func(m *Manager) { m.inspector = inspector }
}

// NewManager cria um Manager vazio, em estado Initializing.
func NewManager(repo Repository, nav navigation.Navigator, log logger.Logger, opts ...Option) *Manager {
	m := &Manager{
		repo:        repo,
		nav:         nav,
		logger:      log,
		landingPath: navigation.LandingPath,
		loginPath:   navigation.LoginPath,
		status:      domain.StatusInitializing,
		ready:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize restaura a sessão do registro durável. Executa uma única vez;
// chamadas seguintes não fazem nada. Nunca falha: qualquer problema resulta
// em sessão anônima, e registros corrompidos são apagados.
func (m *Manager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.opMu.Lock()
		defer m.opMu.Unlock()

		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("Falha inesperada ao restaurar sessão.", fmt.Errorf("panic: %v", r))
				m.setSession("", nil)
			}
			m.markReady()
		}()

		m.restore(ctx)
	})
}

func (m *Manager) restore(ctx context.Context) {
	token, user, err := m.repo.Load(ctx)

	switch {
	case errors.Is(err, sessionrepo.ErrNoRecord):
		m.logger.Info("Nenhuma sessão encontrada.", nil)
		return

	case errors.Is(err, sessionrepo.ErrCorruptRecord):
		m.logger.Warn("Registro de sessão inválido, limpando storage.", map[string]interface{}{"reason": err.Error()})
		m.purge(ctx)
		return

	case err != nil:
		// Backend de storage indisponível: não há o que apagar.
		m.logger.Error("Falha ao ler registro de sessão.", err)
		return
	}

	if m.inspector != nil {
		expired, err := m.inspector.Expired(token)
		if err != nil || expired {
			fields := map[string]interface{}{"user_id": user.UserID, "expired": expired}
			if err != nil {
				fields["reason"] = err.Error()
			}
			m.logger.Warn("Token restaurado não é mais utilizável, limpando storage.", fields)
			m.purge(ctx)
			return
		}
	}

	m.setSession(token, &user)
	m.logger.Info("Sessão restaurada com sucesso.", map[string]interface{}{"user_id": user.UserID, "role": string(user.Role)})
}

// Login instala uma sessão recém-obtida da API de autenticação. Não faz I/O de rede.
// Uma sessão existente é descartada inteira antes (o role de uma sessão nunca muda).
// Falha de gravação no storage é apenas registrada: a sessão vale para este processo.
// O erro de retorno só ocorre quando token/usuário violam o contrato, e nesse caso
// a sessão atual permanece intacta.
func (m *Manager) Login(ctx context.Context, token string, user domain.User) error {
	if strings.TrimSpace(token) == "" {
		return apperror.NewValidationError("token de acesso vazio.")
	}
	if err := user.Validate(); err != nil {
		return err
	}

	m.opMu.Lock()
	if prev, ok := m.User(); ok {
		m.logger.Info("Substituindo sessão existente.", map[string]interface{}{"previous_user_id": prev.UserID, "previous_role": string(prev.Role)})
		m.setSession("", nil)
		m.purge(ctx)
	}

	u := user
	m.setSession(token, &u)

	if err := m.repo.Save(ctx, token, user); err != nil {
		// Uma gravação parcial não pode ser restaurada depois.
		m.logger.Error("Falha ao persistir sessão; ela não sobreviverá a um reinício.", err)
		m.purge(ctx)
	}
	m.opMu.Unlock()

	m.logger.Info("Login realizado com sucesso.", map[string]interface{}{"user_id": user.UserID, "role": string(user.Role)})
	m.nav.Navigate(m.landingPath)
	return nil
}

// Logout limpa a sessão em memória e o registro durável. Idempotente.
func (m *Manager) Logout(ctx context.Context) {
	m.opMu.Lock()
	m.setSession("", nil)
	m.purge(ctx)
	m.opMu.Unlock()

	m.logger.Info("Logout realizado.", nil)
	m.nav.Navigate(m.loginPath)
}

// CurrentAccess devolve a decisão de acesso derivada da sessão atual.
func (m *Manager) CurrentAccess() domain.Access {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch {
	case m.status != domain.StatusReady:
		return domain.Access{State: domain.StateInitializing}
	case m.user == nil:
		return domain.Access{State: domain.StateAnonymous}
	default:
		return domain.Access{State: domain.StateAuthenticated, Authenticated: true, Role: m.user.Role}
	}
}

// Status devolve initializing ou ready.
func (m *Manager) Status() domain.LoadStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Ready é fechado quando Initialize termina.
func (m *Manager) Ready() <-chan struct{} {
	return m.ready
}

// WaitReady bloqueia até Initialize terminar ou ctx ser cancelado.
// Views devem esperar aqui antes de decidir um redirect.
func (m *Manager) WaitReady(ctx context.Context) error {
	select {
	case <-m.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Token devolve o bearer token atual, usado pelo dispatcher de requisições.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return "", false
	}
	return m.token, true
}

// User devolve uma cópia do usuário atual.
func (m *Manager) User() (domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return domain.User{}, false
	}
	return *m.user, true
}

// setSession troca token e usuário juntos: nunca um sem o outro.
func (m *Manager) setSession(token string, user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user == nil {
		m.token, m.user = "", nil
		return
	}
	m.token, m.user = token, user
}

func (m *Manager) purge(ctx context.Context) {
	if err := m.repo.Purge(ctx); err != nil {
		m.logger.Error("Falha ao limpar registro de sessão.", err)
	}
}

func (m *Manager) markReady() {
	m.mu.Lock()
	m.status = domain.StatusReady
	m.mu.Unlock()
	close(m.ready)
}
