package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims são as informações que o cliente consegue ler do access token.
// A assinatura não é verificada aqui: a chave pertence ao backend.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// ErrNotJWT indica um token opaco (não JWT). Não é uma falha: o token segue válido.
var ErrNotJWT = errors.New("token não está no formato JWT")

// Inspector lê claims sem verificar a assinatura para decidir se um token
// restaurado do storage ainda vale a pena ser usado.
type Inspector struct {
	parser *jwt.Parser
	now    func() time.Time
	leeway time.Duration
}

// NewInspector cria um Inspector com a tolerância informada para relógios desalinhados.
func NewInspector(leeway time.Duration) *Inspector {
	return &Inspector{
		parser: jwt.NewParser(),
		now:    time.Now,
		leeway: leeway,
	}
}

// Inspect extrai as claims. Retorna ErrNotJWT para tokens opacos.
func (i *Inspector) Inspect(tokenString string) (*Claims, error) {
	if strings.Count(tokenString, ".") != 2 {
		return nil, ErrNotJWT
	}

	claims := &Claims{}
	if _, _, err := i.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("token malformado: %w", err)
	}
	return claims, nil
}

// Expired informa se o token é um JWT com exp no passado.
// Tokens opacos ou sem exp nunca são considerados expirados.
func (i *Inspector) Expired(tokenString string) (bool, error) {
	claims, err := i.Inspect(tokenString)
	if errors.Is(err, ErrNotJWT) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if claims.ExpiresAt == nil {
		return false, nil
	}
	return i.now().After(claims.ExpiresAt.Time.Add(i.leeway)), nil
}
