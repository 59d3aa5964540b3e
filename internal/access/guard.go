package access

import (
	"context"
	"strings"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/navigation"
)

// Outcome é o que uma view protegida deve fazer com a sessão atual.
type Outcome int

const (
	// Wait: a sessão ainda está sendo restaurada; mostre um estado neutro.
	Wait Outcome = iota
	// Redirect: não há sessão; vá para Decision.Path.
	Redirect
	// Forbidden: há sessão, mas a role não é aceita; renderize o fallback.
	Forbidden
	// Render: acesso liberado.
	Render
)

func (o Outcome) String() string {
	switch o {
	case Wait:
		return "wait"
	case Redirect:
		return "redirect"
	case Forbidden:
		return "forbidden"
	case Render:
		return "render"
	}
	return "unknown"
}

// Decision é o resultado de Guard.Decide.
type Decision struct {
	Outcome Outcome
	Path    string
}

// Source é o que uma view precisa do gerenciador de sessão.
type Source interface {
	CurrentAccess() domain.Access
	WaitReady(ctx context.Context) error
}

// Guard declara as roles aceitas por uma view ou ação. Sem roles, qualquer
// usuário autenticado passa.
type Guard struct {
	Roles     []domain.UserRole
	LoginPath string
}

// Require cria um Guard para as roles informadas.
func Require(roles ...domain.UserRole) Guard {
	return Guard{Roles: roles, LoginPath: navigation.LoginPath}
}

// Authenticated aceita qualquer role.
func Authenticated() Guard {
	return Require()
}

// Decide nunca redireciona enquanto a sessão está em Initializing.
func (g Guard) Decide(a domain.Access) Decision {
	switch {
	case !a.Ready():
		return Decision{Outcome: Wait}
	case !a.Authenticated:
		return Decision{Outcome: Redirect, Path: g.loginPath()}
	case !a.HasRole(g.Roles...):
		return Decision{Outcome: Forbidden}
	default:
		return Decision{Outcome: Render}
	}
}

// Await espera a restauração da sessão e então decide.
func (g Guard) Await(ctx context.Context, src Source) (Decision, error) {
	if err := src.WaitReady(ctx); err != nil {
		return Decision{Outcome: Wait}, err
	}
	return g.Decide(src.CurrentAccess()), nil
}

// Check traduz a decisão em erro para serviços: 401 sem sessão, 403 sem role.
func (g Guard) Check(a domain.Access) error {
	switch g.Decide(a).Outcome {
	case Wait, Redirect:
		return apperror.NewUnauthorizedError("faça login para continuar.")
	case Forbidden:
		return apperror.NewForbiddenError("esta ação exige a role " + g.describeRoles() + ".")
	}
	return nil
}

func (g Guard) loginPath() string {
	if g.LoginPath == "" {
		return navigation.LoginPath
	}
	return g.LoginPath
}

func (g Guard) describeRoles() string {
	names := make([]string, len(g.Roles))
	for i, r := range g.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, " ou ")
}
