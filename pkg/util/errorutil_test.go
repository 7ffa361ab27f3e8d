package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"domain error passes through", NewDuplicateRut(), CodeDuplicateRut, http.StatusConflict},
		{"wrapped domain error", fmt.Errorf("register: %w", NewInvalidCredentials()), CodeInvalidCredentials, http.StatusUnauthorized},
		{"fiber not found", fiber.ErrNotFound, CodeNotFound, http.StatusNotFound},
		{"fiber bad request", fiber.ErrBadRequest, CodeInvalidInput, http.StatusBadRequest},
		{"fiber server error", fiber.ErrBadGateway, CodeInternal, http.StatusInternalServerError},
		{"no rows", fmt.Errorf("get: %w", pgx.ErrNoRows), CodeNotFound, http.StatusNotFound},
		{"anything else", errors.New("boom"), CodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			de := ToDomainError(tc.err)
			assert.Equal(t, tc.code, de.Code)
			assert.Equal(t, tc.status, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestInternalErrorKeepsCauseOutOfMessage(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error", ToDomainError(err).Message)
	assert.True(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(cause, CodeInternal))
}

func TestConstraintViolationDetails(t *testing.T) {
	de := ToDomainError(NewConstraintViolation("usuarios_phone_key"))
	assert.Equal(t, http.StatusConflict, de.HTTPStatus)
	assert.Equal(t, "usuarios_phone_key", de.Details["constraint"])
}
