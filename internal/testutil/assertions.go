package testutil

import (
	"errors"
	"strings"
	"testing"

	apperrors "finsight/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	appErrorOf(t, err, expectedCode)
}

// AssertValidationError checks that err is a VALIDATION_ERROR whose message
// mentions fragment, usually the offending field name.
func AssertValidationError(t *testing.T, err error, fragment string) {
	t.Helper()

	appErr := appErrorOf(t, err, apperrors.ErrValidation.Code)
	if appErr != nil && !strings.Contains(appErr.Message, fragment) {
		t.Errorf("expected validation message to mention %q, got %q", fragment, appErr.Message)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func appErrorOf(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
		return nil
	}
	return appErr
}
