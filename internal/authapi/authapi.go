// Package authapi talks to the external auth provider. Credential issuance
// is the provider's business; this client only exchanges email/password for
// an opaque session token and validates tokens at startup.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Jaideepo7/Meal-Planner/internal/types"
)

// Account is the provider's view of an authenticated user plus the session
// token it issued. The token is opaque to this engine.
type Account struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	IDToken     string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword validates credentials and returns the account with a
// fresh session token. Rejections map to types.ErrInvalidCredentials,
// network failures to types.ErrNetworkUnavailable.
func SignInWithPassword(ctx context.Context, httpClient *http.Client, baseURL, apiKey, email, password string) (*Account, error) {
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	return call(ctx, httpClient, baseURL, apiKey, "accounts:signInWithPassword", "sign in", body)
}

// SignUp creates the account first, then behaves like SignInWithPassword.
func SignUp(ctx context.Context, httpClient *http.Client, baseURL, apiKey, displayName, email, password string) (*Account, error) {
	body := map[string]any{"displayName": displayName, "email": email, "password": password, "returnSecureToken": true}
	return call(ctx, httpClient, baseURL, apiKey, "accounts:signUp", "sign up", body)
}

// LookupToken validates a persisted session token and resolves it back to
// an account. An expired or revoked token maps to types.ErrInvalidCredentials.
func LookupToken(ctx context.Context, httpClient *http.Client, baseURL, apiKey, idToken string) (*Account, error) {
	body := map[string]any{"idToken": idToken}
	acct, err := call(ctx, httpClient, baseURL, apiKey, "accounts:lookup", "token lookup", body)
	if err != nil {
		return nil, err
	}
	// Lookup responses omit the token; keep the one we validated.
	acct.IDToken = idToken
	return acct, nil
}

// SignOut revokes the token remotely. Best effort: callers clear local
// state regardless of the outcome.
func SignOut(ctx context.Context, httpClient *http.Client, baseURL, apiKey, idToken string) error {
	body := map[string]any{"idToken": idToken}
	_, err := call(ctx, httpClient, baseURL, apiKey, "accounts:signOut", "sign out", body)
	return err
}

// SendPasswordReset asks the provider to email a reset link.
func SendPasswordReset(ctx context.Context, httpClient *http.Client, baseURL, apiKey, email string) error {
	body := map[string]any{"requestType": "PASSWORD_RESET", "email": email}
	_, err := call(ctx, httpClient, baseURL, apiKey, "accounts:sendOobCode", "password reset", body)
	return err
}

func call(ctx context.Context, httpClient *http.Client, baseURL, apiKey, endpoint, operation string, body map[string]any) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/%s?key=%s", baseURL, endpoint, apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", operation, types.ErrNetworkUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		var er errorResponse
		_ = json.Unmarshal(raw, &er)
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("%s: %w (%s)", operation, types.ErrInvalidCredentials, er.Error.Message)
		}
		return nil, fmt.Errorf("%s: status %d (%s)", operation, resp.StatusCode, er.Error.Message)
	}

	var acct Account
	if err := json.NewDecoder(resp.Body).Decode(&acct); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return &acct, nil
}
