package apperrors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"toystore/internal/apperrors"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsIdentity(t *testing.T) {
	cause := errors.New("product 7 missing")
	err := apperrors.ErrProductNotFound.Wrap(cause)

	assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, apperrors.ErrOrderNotFound)
	assert.Equal(t, "product not found: product 7 missing", err.Error())
}

func TestPersistence(t *testing.T) {
	assert.NoError(t, apperrors.Persistence(nil))

	raw := errors.New("disk I/O error")
	err := apperrors.Persistence(raw)
	assert.ErrorIs(t, err, apperrors.ErrPersistence)
	assert.ErrorIs(t, err, raw)

	typed := fmt.Errorf("checkout: %w", apperrors.ErrEmptyCart)
	assert.Equal(t, typed, apperrors.Persistence(typed))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, apperrors.StatusCode(apperrors.ErrInsufficientStock.Wrapf("product %d", 3)))
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(apperrors.ErrMethodRequired))
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusCode(errors.New("boom")))
}
