package domain

// LoadStatus indica se o estado persistido já foi consultado.
type LoadStatus string

const (
	StatusInitializing LoadStatus = "initializing"
	StatusReady        LoadStatus = "ready"
)

// SessionState é o estado observável do gerenciador de sessão.
type SessionState string

const (
	StateInitializing  SessionState = "initializing"
	StateAnonymous     SessionState = "anonymous"
	StateAuthenticated SessionState = "authenticated"
)

// Access é a decisão derivada da sessão atual, consultada por toda view protegida.
// Role fica vazia quando Authenticated é false.
type Access struct {
	State         SessionState
	Authenticated bool
	Role          UserRole
}

// Ready informa se a restauração da sessão já terminou.
func (a Access) Ready() bool {
	return a.State != StateInitializing
}

// HasRole informa se a sessão está autenticada com uma das roles informadas.
// Sem roles, basta estar autenticado.
func (a Access) HasRole(roles ...UserRole) bool {
	if !a.Authenticated {
		return false
	}
	if len(roles) == 0 {
		return true
	}
	for _, r := range roles {
		if a.Role == r {
			return true
		}
	}
	return false
}
