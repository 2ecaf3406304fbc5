package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

func TestSignInWithPassword(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:signInWithPassword" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "api-key" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["email"] != "a@example.com" || body["returnSecureToken"] != true {
			t.Errorf("body = %v", body)
		}
		w.Write([]byte(`{"localId":"u1","email":"a@example.com","displayName":"Ana","idToken":"tok-1"}`))
	}))
	defer srv.Close()

	acct, err := SignInWithPassword(context.Background(), srv.Client(), srv.URL, "api-key", "a@example.com", "hunter2")
	if err != nil {
		t.Fatalf("SignInWithPassword: %v", err)
	}
	if acct.LocalID != "u1" || acct.IDToken != "tok-1" || acct.DisplayName != "Ana" {
		t.Errorf("account = %+v", acct)
	}
}

func TestSignInRejectionMapsToInvalidCredentials(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"INVALID_PASSWORD"}}`))
	}))
	defer srv.Close()

	_, err := SignInWithPassword(context.Background(), srv.Client(), srv.URL, "k", "a@example.com", "nope")
	if !errors.Is(err, types.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestNetworkFailureMapsToNetworkUnavailable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	_, err := SignInWithPassword(context.Background(), http.DefaultClient, srv.URL, "k", "a@example.com", "pw")
	if !errors.Is(err, types.ErrNetworkUnavailable) {
		t.Fatalf("expected ErrNetworkUnavailable, got %v", err)
	}
}

func TestSignUpSendsDisplayName(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:signUp" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["displayName"] != "Ben" {
			t.Errorf("displayName = %v", body["displayName"])
		}
		w.Write([]byte(`{"localId":"u2","email":"b@example.com","displayName":"Ben","idToken":"tok-2"}`))
	}))
	defer srv.Close()

	acct, err := SignUp(context.Background(), srv.Client(), srv.URL, "k", "Ben", "b@example.com", "pw")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if acct.LocalID != "u2" {
		t.Errorf("account = %+v", acct)
	}
}

func TestLookupTokenKeepsValidatedToken(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:lookup" {
			t.Errorf("path = %s", r.URL.Path)
		}
		// Lookup responses omit the token.
		w.Write([]byte(`{"localId":"u1","email":"a@example.com"}`))
	}))
	defer srv.Close()

	acct, err := LookupToken(context.Background(), srv.Client(), srv.URL, "k", "tok-persisted")
	if err != nil {
		t.Fatalf("LookupToken: %v", err)
	}
	if acct.IDToken != "tok-persisted" {
		t.Errorf("token = %q, want the validated one re-attached", acct.IDToken)
	}
}

func TestLookupExpiredToken(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"INVALID_ID_TOKEN"}}`))
	}))
	defer srv.Close()

	_, err := LookupToken(context.Background(), srv.Client(), srv.URL, "k", "stale")
	if !errors.Is(err, types.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSendPasswordReset(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts:sendOobCode" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["requestType"] != "PASSWORD_RESET" {
			t.Errorf("requestType = %v", body["requestType"])
		}
		w.Write([]byte(`{"email":"a@example.com"}`))
	}))
	defer srv.Close()

	if err := SendPasswordReset(context.Background(), srv.Client(), srv.URL, "k", "a@example.com"); err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
}
