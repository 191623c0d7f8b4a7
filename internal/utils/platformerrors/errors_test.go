package platformerrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewError(t *testing.T) {
	ctx := context.WithValue(context.Background(), "requestID", "req-123") //nolint:staticcheck

	err := NewError(ctx, LayerDomain, ErrorTypeNotFound, "Conversation not found", nil, "11111111-0000-4000-8000-000000000000")
	if err.Type != ErrorTypeNotFound {
		t.Errorf("Type = %q", err.Type)
	}
	if err.Layer != LayerDomain {
		t.Errorf("Layer = %q", err.Layer)
	}
	if err.RequestID != "req-123" {
		t.Errorf("RequestID = %q, want propagated from context", err.RequestID)
	}
	if err.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestNewError_NoRequestID(t *testing.T) {
	err := NewError(context.Background(), LayerRepository, ErrorTypeInternal, "boom", nil, "")
	if err.RequestID != "" {
		t.Errorf("RequestID = %q, want empty", err.RequestID)
	}
}

func TestPlatformError_Error(t *testing.T) {
	bare := NewError(context.Background(), LayerDomain, ErrorTypeValidation, "invalid command", nil, "code-1")
	wrapped := NewError(context.Background(), LayerDomain, ErrorTypeValidation, "invalid command", fmt.Errorf("field empty"), "code-1")

	if bare.Error() == wrapped.Error() {
		t.Error("wrapped cause must appear in the message")
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Error("Unwrap must expose the cause")
	}
}

func TestAsError_PreservesType(t *testing.T) {
	ctx := context.Background()

	repoErr := NewError(ctx, LayerRepository, ErrorTypeNotFound, "row missing", nil, "22222222-0000-4000-8000-000000000000")
	domainErr := AsError(ctx, LayerDomain, repoErr, "failed to load conversation")

	if domainErr.Type != ErrorTypeNotFound {
		t.Errorf("Type = %q, want NOT_FOUND preserved across layers", domainErr.Type)
	}
	if domainErr.Layer != LayerDomain {
		t.Errorf("Layer = %q", domainErr.Layer)
	}
	if domainErr.Code != repoErr.Code {
		t.Errorf("Code = %q, want original %q", domainErr.Code, repoErr.Code)
	}
	if !errors.Is(domainErr, repoErr) {
		t.Error("original error lost from the chain")
	}
}

func TestAsError_ClassifiesUnknownAsInternal(t *testing.T) {
	err := AsError(context.Background(), LayerDomain, fmt.Errorf("dial tcp: refused"), "failed to save")
	if err.Type != ErrorTypeInternal {
		t.Errorf("Type = %q, want INTERNAL", err.Type)
	}
}

func TestAsError_Nil(t *testing.T) {
	if err := AsError(context.Background(), LayerDomain, nil, "ignored"); err != nil {
		t.Errorf("AsError(nil) = %v, want nil", err)
	}
}

func TestIsErrorType(t *testing.T) {
	ctx := context.Background()
	notFound := NewError(ctx, LayerRepository, ErrorTypeNotFound, "missing", nil, "")

	if !IsErrorType(notFound, ErrorTypeNotFound) {
		t.Error("direct match failed")
	}
	if IsErrorType(notFound, ErrorTypeForbidden) {
		t.Error("type mismatch must report false")
	}

	wrapped := fmt.Errorf("outer: %w", notFound)
	if !IsErrorType(wrapped, ErrorTypeNotFound) {
		t.Error("wrapped match failed")
	}

	if IsErrorType(nil, ErrorTypeNotFound) {
		t.Error("nil must report false")
	}
	if IsErrorType(fmt.Errorf("plain"), ErrorTypeNotFound) {
		t.Error("non-platform error must report false")
	}
}

func TestErrorTypeToHTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		want      int
	}{
		{ErrorTypeNotFound, http.StatusNotFound},
		{ErrorTypeValidation, http.StatusBadRequest},
		{ErrorTypeConflict, http.StatusConflict},
		{ErrorTypeConstraint, http.StatusConflict},
		{ErrorTypeUnauthorized, http.StatusUnauthorized},
		{ErrorTypeForbidden, http.StatusForbidden},
		{ErrorTypeProtected, http.StatusForbidden},
		{ErrorTypeDatabaseError, http.StatusInternalServerError},
		{ErrorTypeInternal, http.StatusInternalServerError},
		{ErrorType("SOMETHING_NEW"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.errorType), func(t *testing.T) {
			if got := ErrorTypeToHTTPStatus(tt.errorType); got != tt.want {
				t.Errorf("ErrorTypeToHTTPStatus(%q) = %d, want %d", tt.errorType, got, tt.want)
			}
		})
	}
}
