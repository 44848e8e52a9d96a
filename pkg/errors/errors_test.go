package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrDocumentNotFound, http.StatusNotFound},
		{ErrVersionNotFound, http.StatusNotFound},
		{ErrCacheDisabled, http.StatusNotFound},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrTimeout, http.StatusServiceUnavailable},
		{ErrInternal, http.StatusInternalServerError},
		{fmt.Errorf("fetching doc: %w", ErrDocumentNotFound), http.StatusNotFound},
	}
	for _, tc := range cases {
		if got := HTTPStatusCode(tc.err); got != tc.want {
			t.Errorf("HTTPStatusCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestAppErrorStatusTakesPrecedence(t *testing.T) {
	err := New(ErrInvalidInput, http.StatusUnprocessableEntity, "rating out of range")
	if got := HTTPStatusCode(err); got != http.StatusUnprocessableEntity {
		t.Errorf("HTTPStatusCode = %d, want %d", got, http.StatusUnprocessableEntity)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("AppError does not unwrap to its sentinel")
	}
}
