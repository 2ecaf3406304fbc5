package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCategoryForStatus(t *testing.T) {
	cases := []struct {
		status int
		want   Category
	}{
		{400, Irrecoverable},
		{401, Irrecoverable},
		{403, Irrecoverable},
		{404, Irrecoverable},
		{408, Recoverable},
		{429, Recoverable},
		{500, Recoverable},
		{502, Recoverable},
		{503, Recoverable},
	}
	for _, tc := range cases {
		if got := categoryForStatus(tc.status); got != tc.want {
			t.Errorf("status %d classified %s, want %s", tc.status, got, tc.want)
		}
	}
}

func TestIsIrrecoverable(t *testing.T) {
	if !IsIrrecoverable(NewHTTPError(404, "", "get doc")) {
		t.Error("404 should be irrecoverable")
	}
	if IsIrrecoverable(NewHTTPError(500, "", "get doc")) {
		t.Error("500 should be recoverable")
	}
	if IsIrrecoverable(NewNetworkError("get doc", fmt.Errorf("refused"))) {
		t.Error("network error should be recoverable")
	}
	if IsIrrecoverable(fmt.Errorf("plain")) {
		t.Error("unclassified errors default to recoverable")
	}
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	inner := fmt.Errorf("dial tcp: refused")
	err := NewNetworkError("put doc", inner)
	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the underlying error")
	}
	if !strings.Contains(err.Error(), "Recoverable") {
		t.Errorf("message should carry the category, got %q", err.Error())
	}
}

func TestHTTPErrorMessage(t *testing.T) {
	err := NewHTTPError(401, `{"error":"unauthorized"}`, "sign in")
	if !strings.Contains(err.Error(), "HTTP 401") {
		t.Errorf("message should carry the status, got %q", err.Error())
	}
	if err.Body == "" {
		t.Error("body should be retained for debugging")
	}
}
