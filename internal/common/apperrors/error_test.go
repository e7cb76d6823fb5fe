package apperrors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestError(t *testing.T) {
	ErrBase := New("base error")
	assert.Equal(t, "base error", ErrBase.Error())
	assert.ErrorIs(t, ErrBase, ErrBase)

	ErrChild := ErrBase.New("child")
	assert.Equal(t, "child", ErrChild.Error())
	assert.ErrorIs(t, ErrChild, ErrBase)

	ErrOther := New("other error")
	wrapped := ErrChild.Err(ErrOther.Msg("other detail"))
	assert.Equal(t, "child", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrBase)
	assert.ErrorIs(t, wrapped, ErrChild)
	assert.ErrorIs(t, wrapped, ErrOther)

	goErr := errors.New("plain")
	withMsg := ErrChild.MsgErr("msg", goErr)
	assert.Equal(t, "msg", withMsg.Error())
	assert.ErrorIs(t, withMsg, ErrBase)
	assert.ErrorIs(t, withMsg, goErr)

	fmtErr := fmt.Errorf("formatted")
	assert.ErrorIs(t, ErrChild.Err(fmtErr), fmtErr)
	assert.NotErrorIs(t, ErrChild, ErrOther)
}

func TestStatusCode(t *testing.T) {
	ErrNotFound := New("not found").SetStatusCode(http.StatusNotFound)
	ErrTaskNotFound := ErrNotFound.New("Task not found")

	assert.Equal(t, http.StatusNotFound, ErrTaskNotFound.StatusCode())
	assert.Equal(t, http.StatusNotFound, ErrTaskNotFound.Msg("again").StatusCode())
	assert.Equal(t, 0, New("plain").StatusCode())

	overridden := ErrTaskNotFound.SetStatusCode(http.StatusGone)
	assert.Equal(t, http.StatusGone, overridden.StatusCode())
	assert.Equal(t, http.StatusNotFound, ErrTaskNotFound.StatusCode(), "receiver must be unchanged")
}

func TestErrorAll(t *testing.T) {
	ErrValidation := New("validation failed").SetStatusCode(http.StatusUnprocessableEntity)
	err := ErrValidation.MsgErr("invalid task", errors.New("title is required"))
	assert.Equal(t, "invalid task", err.Error())
	assert.Equal(t, "invalid task; title is required", err.ErrorAll())
}

func TestStatusOf(t *testing.T) {
	ErrBad := New("bad").SetStatusCode(http.StatusBadRequest)
	assert.Equal(t, http.StatusBadRequest, StatusOf(ErrBad, http.StatusInternalServerError))
	assert.Equal(t, http.StatusBadRequest, StatusOf(fmt.Errorf("wrap: %w", ErrBad), 0))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("x"), http.StatusInternalServerError))
	assert.Equal(t, http.StatusTeapot, StatusOf(New("no code"), http.StatusTeapot))
}
