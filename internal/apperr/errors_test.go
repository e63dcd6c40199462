package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")

	assert.Equal(t, KindNotFound, KindOf(NotFound("No tutor found for tutor_id: %d", 1)))
	assert.Equal(t, KindInvalidInput, KindOf(InvalidInput("bad")))
	assert.Equal(t, KindStoreFailure, KindOf(StoreFailure(cause)))
	assert.Equal(t, KindStoreFailure, KindOf(cause), "unclassified errors are store failures")
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrapped: %w", NotFound("x"))))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(StoreFailure(errors.New("x"))))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("x")))
}

func TestStatusClassOf(t *testing.T) {
	assert.Equal(t, ClassNotFound, StatusClassOf(KindNotFound))
	assert.Equal(t, ClassServerError, StatusClassOf(KindStoreFailure))
	assert.Equal(t, ClassClientError, StatusClassOf(KindInvalidInput))
}

func TestNotFoundCauseHidesCause(t *testing.T) {
	cause := errors.New("sql: database is closed")
	err := NotFoundCause(cause, "Topic id not found")

	assert.Equal(t, "Topic id not found", err.Error())
	assert.Equal(t, "Topic id not found", Message(err))
	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, KindNotFound))
	assert.False(t, Is(nil, KindNotFound))
}

func TestStoreFailureMessage(t *testing.T) {
	assert.Equal(t, "boom", StoreFailure(errors.New("boom")).Message)
	assert.Equal(t, "store failure", StoreFailure(nil).Message)
}
