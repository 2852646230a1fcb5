package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"careerai-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestCodeOf(t *testing.T) {
	t.Run("AppError keeps its code", func(t *testing.T) {
		assert.Equal(t, http.StatusConflict, apperror.CodeOf(apperror.Conflict("dup")))
	})

	t.Run("Wrapped AppError is found", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", apperror.NotFound("missing"))
		assert.Equal(t, http.StatusNotFound, apperror.CodeOf(err))
		assert.True(t, apperror.Is(err, http.StatusNotFound))
	})

	t.Run("Foreign errors map to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, apperror.CodeOf(errors.New("boom")))
		assert.False(t, apperror.Is(errors.New("boom"), http.StatusNotFound))
	})
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperror.Unavailable(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusServiceUnavailable, err.Code)
	assert.Equal(t, "Service temporarily unavailable", err.Error())
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  *apperror.AppError
		want apperror.Kind
	}{
		{apperror.BadRequest("x"), apperror.KindInvalidInput},
		{apperror.Unauthorized("x"), apperror.KindUnauthenticated},
		{apperror.Forbidden("x"), apperror.KindForbidden},
		{apperror.NotFound("x"), apperror.KindNotFound},
		{apperror.Conflict("x"), apperror.KindConflict},
		{apperror.TooManyRequests("x"), apperror.KindRateLimited},
		{apperror.Unavailable(nil), apperror.KindUnavailable},
		{apperror.Internal(nil), apperror.KindInternal},
		{apperror.New(http.StatusMethodNotAllowed, "x", nil), apperror.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Kind())
		})
	}
}
