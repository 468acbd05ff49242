package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("limit must be non-negative"), http.StatusBadRequest},
		{"invalid uri", InvalidURI(""), http.StatusBadRequest},
		{"embedding not found", EmbeddingNotFound("/c/en/xyzzy"), http.StatusNotFound},
		{"not found", NotFound("no such relation"), http.StatusNotFound},
		{"unavailable", Unavailable("connection pool exhausted", errors.New("timeout")), http.StatusServiceUnavailable},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
		{"unclassified", errors.New("raw"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTTPStatus(tt.err); got != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, got)
			}
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("store ping: %w", Unavailable("database unreachable", cause))

	if got := KindOf(err); got != KindUnavailable {
		t.Fatalf("expected KindUnavailable, got %v", got)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive errors.Is")
	}
}

func TestPublicMessage_NeverLeaksCause(t *testing.T) {
	cause := errors.New("pq: password authentication failed for user")

	if msg := PublicMessage(Internal(cause)); msg != "internal server error" {
		t.Fatalf("expected generic message, got %q", msg)
	}
	if msg := PublicMessage(cause); msg != "internal server error" {
		t.Fatalf("expected generic message for unclassified error, got %q", msg)
	}
}

func TestEmbeddingNotFound_NamesAllMissing(t *testing.T) {
	err := EmbeddingNotFound("/c/en/foo", "/c/en/bar")

	want := "no embedding found for /c/en/foo, /c/en/bar"
	if err.Message != want {
		t.Fatalf("expected %q, got %q", want, err.Message)
	}
	if KindOf(err) != KindEmbeddingNotFound {
		t.Fatalf("expected KindEmbeddingNotFound, got %v", KindOf(err))
	}
}

func TestWrap_NilErr(t *testing.T) {
	if err := Wrap(KindUnavailable, "ignored", nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := Internal(nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindValidation, "validation"},
		{KindInvalidURI, "invalid_uri"},
		{KindEmbeddingNotFound, "embedding_not_found"},
		{KindNotFound, "not_found"},
		{KindUnavailable, "unavailable"},
		{KindInternal, "internal"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}
