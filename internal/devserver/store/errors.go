package store

import (
	"net/http"

	"github.com/trackme/trackme/internal/common/apperrors"
)

var (
	ErrStore            apperrors.Error = apperrors.New("store error").SetStatusCode(http.StatusInternalServerError)
	ErrNotFound         apperrors.Error = ErrStore.New("Not Found").SetStatusCode(http.StatusNotFound)
	ErrInvalidInput     apperrors.Error = ErrStore.New("invalid input").SetStatusCode(http.StatusBadRequest)
	ErrUserNotFound     apperrors.Error = ErrNotFound.New("User not found")
	ErrTaskNotFound     apperrors.Error = ErrNotFound.New("Task not found")
	ErrEventNotFound    apperrors.Error = ErrNotFound.New("Event not found")
	ErrMealNotFound     apperrors.Error = ErrNotFound.New("Meal not found")
	ErrActivityNotFound apperrors.Error = ErrNotFound.New("Activity not found")
	ErrInsightNotFound  apperrors.Error = ErrNotFound.New("Insight not found")
	ErrEmailRegistered  apperrors.Error = ErrInvalidInput.New("Email already registered")
	ErrEmailInUse       apperrors.Error = ErrInvalidInput.New("Email already in use")
	ErrEventTimeRange   apperrors.Error = ErrInvalidInput.New("Start datetime must be before end datetime")
)
