// Package api é o dispatcher de requisições REST da plataforma e os esquemas
// tipados de cada endpoint. Toda resposta é validada aqui; campos ausentes
// viram SchemaError em vez de valores vazios.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"gotour/internal/domain"
	apperror "gotour/internal/errors"
	"gotour/internal/pkg/logger"
)

const maxResponseBytes = 4 << 20

// TokenSource fornece o bearer token da sessão atual (session.Manager).
type TokenSource interface {
	Token() (string, bool)
}

// Client envia requisições à API e decodifica o envelope {"data": ...}.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	logger  logger.Logger
}

// Option configura um Client.
type Option func(*Client)

// WithHTTPClient substitui o http.Client (testes, proxies).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource anexa "Authorization: Bearer" quando há sessão.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.tokens = src }
}

// WithRateLimit limita a maxRequests por period, com rajada de maxRequests.
func WithRateLimit(maxRequests int, period time.Duration) Option {
	return func(c *Client) {
		if maxRequests <= 0 || period <= 0 {
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(period/time.Duration(maxRequests)), maxRequests)
	}
}

// NewClient cria um Client para baseURL (ex.: "https://api.example.com/api/v1").
func NewClient(baseURL string, timeout time.Duration, log logger.Logger, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, apperror.NewValidationError(fmt.Sprintf("URL base da API inválida: '%s'.", baseURL))
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		logger:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// envelope é o formato comum das respostas da API.
type envelope struct {
	Success *bool           `json:"success,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data"`
}

// do executa a requisição. Com out != nil, o campo data é obrigatório e é decodificado em out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return apperror.NewInternalError("limite de requisições aguardando "+path, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternalError("falha ao serializar payload de "+path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return apperror.NewInternalError("falha ao montar requisição "+path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Falha de rede ao chamar a API.", err)
		return apperror.NewInternalError(fmt.Sprintf("falha de rede em %s %s", method, path), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return apperror.NewInternalError("falha ao ler resposta de "+path, err)
	}

	c.logger.Debug("Resposta da API recebida.", map[string]interface{}{
		"method":      method,
		"path":        path,
		"status":      resp.StatusCode,
		"request_id":  requestID,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode >= http.StatusBadRequest {
		var errResp domain.ErrorResponse
		_ = json.Unmarshal(raw, &errResp)
		return apperror.FromHTTPStatus(resp.StatusCode, errResp.Message)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return apperror.NewSchemaError(path, "corpo não é JSON", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return apperror.NewSchemaError(path, "campo 'data' ausente", nil)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperror.NewSchemaError(path, "campo 'data' com formato inesperado", err)
	}
	return nil
}

// fetch combina do + validação do registro decodificado.
func fetch[T any](ctx context.Context, c *Client, method, path string, body interface{}, validate func(T) error) (T, error) {
	var out, zero T
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return zero, err
	}
	if validate != nil {
		if err := validate(out); err != nil {
			return zero, apperror.NewSchemaError(path, err.Error(), err)
		}
	}
	return out, nil
}

// each aplica validate a cada item de uma lista.
func each[T any](validate func(T) error) func([]T) error {
	return func(items []T) error {
		for i, item := range items {
			if err := validate(item); err != nil {
				return fmt.Errorf("item %d: %w", i, err)
			}
		}
		return nil
	}
}

func segment(id string) string {
	return url.PathEscape(id)
}
