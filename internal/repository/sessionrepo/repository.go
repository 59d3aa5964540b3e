package sessionrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
	"gotour/internal/pkg/storage"
)

// Nomes dos dois slots do registro durável.
const (
	TokenSlot = "accessToken"
	UserSlot  = "user"
)

var (
	// ErrNoRecord indica que nenhum dos slots existe.
	ErrNoRecord = errors.New("sessão: nenhum registro persistido")
	// ErrCorruptRecord indica um registro que existe mas não pode ser usado.
	ErrCorruptRecord = errors.New("sessão: registro persistido corrompido")
)

// sentinels são valores que navegadores e serializadores gravam no lugar de "nada".
var sentinels = map[string]bool{
	"":          true,
	"undefined": true,
	"null":      true,
}

// Repository lê e grava o espelho durável da sessão (token + usuário serializado).
type Repository struct {
	store  storage.Store
	prefix string
	logger logger.Logger
}

// NewRepository cria o repositório. prefix separa perfis/ambientes no mesmo Store.
func NewRepository(store storage.Store, prefix string, log logger.Logger) *Repository {
	return &Repository{store: store, prefix: prefix, logger: log}
}

func (r *Repository) key(slot string) string {
	if r.prefix == "" {
		return slot
	}
	return r.prefix + ":" + slot
}

// Load lê os dois slots e decodifica o usuário.
// Erros: ErrNoRecord, ErrCorruptRecord (com o motivo) ou a falha de leitura do Store.
func (r *Repository) Load(ctx context.Context) (string, domain.User, error) {
	token, tokenOK, err := r.read(ctx, TokenSlot)
	if err != nil {
		return "", domain.User{}, err
	}
	rawUser, userOK, err := r.read(ctx, UserSlot)
	if err != nil {
		return "", domain.User{}, err
	}

	if !tokenOK && !userOK {
		return "", domain.User{}, ErrNoRecord
	}
	if !tokenOK || !userOK {
		return "", domain.User{}, fmt.Errorf("%w: apenas um dos slots está presente", ErrCorruptRecord)
	}
	if isSentinel(token) {
		return "", domain.User{}, fmt.Errorf("%w: token inválido %q", ErrCorruptRecord, token)
	}
	if isSentinel(rawUser) {
		return "", domain.User{}, fmt.Errorf("%w: usuário inválido %q", ErrCorruptRecord, rawUser)
	}

	var user domain.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if err := user.Validate(); err != nil {
		return "", domain.User{}, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	return token, user, nil
}

// read devolve (valor, presente, erro). Valores ilegíveis (storage.ErrCorrupt)
// viram ErrCorruptRecord para que o chamador limpe o registro.
func (r *Repository) read(ctx context.Context, slot string) (string, bool, error) {
	v, err := r.store.Get(ctx, r.key(slot))
	switch {
	case err == nil:
		return v, true, nil
	case errors.Is(err, storage.ErrNotFound):
		return "", false, nil
	case errors.Is(err, storage.ErrCorrupt):
		return "", false, fmt.Errorf("%w: slot %s ilegível", ErrCorruptRecord, slot)
	default:
		return "", false, apperror.NewStorageError("falha ao ler slot "+slot, err)
	}
}

// Save grava o token como está e o usuário em JSON.
func (r *Repository) Save(ctx context.Context, token string, user domain.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return apperror.NewInternalError("falha ao serializar usuário", err)
	}

	if err := r.store.Set(ctx, r.key(TokenSlot), token); err != nil {
		return apperror.NewStorageError("falha ao gravar token", err)
	}
	if err := r.store.Set(ctx, r.key(UserSlot), string(payload)); err != nil {
		return apperror.NewStorageError("falha ao gravar usuário", err)
	}

	r.logger.Debug("Registro de sessão gravado.", map[string]interface{}{"user_id": user.UserID, "prefix": r.prefix})
	return nil
}

// Purge remove os dois slots. Tenta ambos mesmo que o primeiro falhe.
func (r *Repository) Purge(ctx context.Context) error {
	var errs []error
	for _, slot := range []string{TokenSlot, UserSlot} {
		if err := r.store.Remove(ctx, r.key(slot)); err != nil {
			errs = append(errs, fmt.Errorf("slot %s: %w", slot, err))
		}
	}

	if len(errs) > 0 {
		return apperror.NewStorageError("falha ao limpar registro de sessão", errors.Join(errs...))
	}

	r.logger.Debug("Registro de sessão removido.", map[string]interface{}{"prefix": r.prefix})
	return nil
}

func isSentinel(v string) bool {
	return sentinels[strings.TrimSpace(v)]
}
