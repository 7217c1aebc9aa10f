package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// RefreshCaller performs the actual refresh HTTP call for the auth
// coordinator. It talks to the refresh endpoint directly, outside the
// authenticated pipeline, so a refresh can never trigger its own 401
// refresh cycle. It satisfies auth.TokenRefresher.
type RefreshCaller struct {
	baseURL    string
	httpClient *http.Client
}

// NewRefreshCaller is the constructor for RefreshCaller.
func NewRefreshCaller(baseURL string, httpClient *http.Client) *RefreshCaller {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &RefreshCaller{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// PerformTokenRefresh exchanges the refresh token for a new credential pair.
// The backend rotates the refresh token on every use; a response missing
// either field is rejected so a half-updated pair never reaches the store.
func (r *RefreshCaller) PerformTokenRefresh(ctx context.Context, refreshToken string) (string, string, error) {
	payload, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal refresh request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return "", "", fmt.Errorf("failed to create refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Debug().Msg("Calling token refresh endpoint")
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("failed to read refresh response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("Refresh endpoint returned non-OK status")
		return "", "", fmt.Errorf("unexpected HTTP status from refresh endpoint: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var result struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", "", fmt.Errorf("failed to parse refresh response: %w", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		return "", "", fmt.Errorf("refresh response missing token fields")
	}
	return result.AccessToken, result.RefreshToken, nil
}
