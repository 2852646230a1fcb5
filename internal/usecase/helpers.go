package usecase

import (
	"net/http"
	"strings"

	"careerai-backend/pkg/apperror"
	"careerai-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// validateInput runs struct validation and folds failures into one BadRequest.
func validateInput(v *validator.Validate, in interface{}) error {
	if v == nil {
		return nil
	}
	if err := v.Struct(in); err != nil {
		return apperror.New(http.StatusBadRequest, strings.Join(validation.FormatValidationErrors(err), "; "), err)
	}
	return nil
}

// normalizePage clamps skip/limit to the accepted range.
func normalizePage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return offset, limit
}

func isNotFound(err error) bool {
	return apperror.Is(err, http.StatusNotFound)
}

func isUnavailable(err error) bool {
	return apperror.Is(err, http.StatusServiceUnavailable)
}
