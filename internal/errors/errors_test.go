package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromHTTPStatus(t *testing.T) {
	tests := []struct {
		status   int
		category string
	}{
		{http.StatusBadRequest, "VALIDATION_ERROR"},
		{http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.StatusForbidden, "FORBIDDEN"},
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusConflict, "CONFLICT"},
		{http.StatusInternalServerError, "INTERNAL_ERROR"},
		{http.StatusTooManyRequests, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			err := FromHTTPStatus(tt.status, "")
			assert.Equal(t, tt.category, err.Category())
			assert.Contains(t, err.Error(), http.StatusText(tt.status))
		})
	}
}

func TestFromHTTPStatus_KeepsBackendMessage(t *testing.T) {
	err := FromHTTPStatus(http.StatusConflict, "Email já cadastrado")

	assert.Equal(t, "Conflito de estado: Email já cadastrado", err.Error())
	assert.Equal(t, http.StatusConflict, err.HTTPStatus())
}

func TestUnwrapChains(t *testing.T) {
	root := stderrors.New("connection refused")

	storageErr := NewStorageError("falha ao ler sessão", root)
	schemaErr := NewSchemaError("/tours", "campo ausente", root)

	assert.ErrorIs(t, storageErr, root)
	assert.Contains(t, storageErr.Error(), "connection refused")
	assert.ErrorIs(t, schemaErr, root)
	assert.Equal(t, http.StatusBadGateway, schemaErr.HTTPStatus())
}

func TestDescribe(t *testing.T) {
	category, msg := Describe(NewForbiddenError("só admin"))
	assert.Equal(t, "FORBIDDEN", category)
	assert.Equal(t, "Acesso negado: só admin", msg)

	category, msg = Describe(stderrors.New("boom"))
	assert.Equal(t, "UNKNOWN_ERROR", category)
	assert.Equal(t, "Ocorreu um erro inesperado.", msg)
}

func TestDescribe_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", NewUnauthorizedError("token expirado"))

	category, _ := Describe(wrapped)

	assert.Equal(t, "UNAUTHORIZED", category)
}
