// internal/common/auth/keycloak.go
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"esports-waitlist/internal/common/errors"
)

// IdentityProvider is the opaque sign-up / sign-in capability the intake
// pages consume.
type IdentityProvider interface {
	SignUpURL() string
	SignInURL() string
	IsSignedIn(ctx context.Context, bearerToken string) (bool, error)
}

// KeycloakClient implements IdentityProvider against a Keycloak realm.
type KeycloakClient struct {
	baseURL      string
	realm        string
	clientID     string
	clientSecret string
	redirectURL  string
	httpClient   *http.Client
}

// TokenInfo holds the information returned by the token introspection endpoint.
type TokenInfo struct {
	Active    bool   `json:"active"`
	Scope     string `json:"scope,omitempty"`
	ClientID  string `json:"client_id,omitempty"`
	Username  string `json:"username,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
	Sub       string `json:"sub,omitempty"`
}

// NewKeycloakClient creates a new instance of KeycloakClient.
func NewKeycloakClient(baseURL, realm, clientID, clientSecret, redirectURL string) *KeycloakClient {
	return &KeycloakClient{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		realm:        realm,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (k *KeycloakClient) oidcURL(endpoint string) string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/%s", k.baseURL, k.realm, endpoint)
}

func (k *KeycloakClient) browserFlowURL(endpoint string) string {
	q := url.Values{}
	q.Set("client_id", k.clientID)
	q.Set("response_type", "code")
	q.Set("scope", "openid email")
	if k.redirectURL != "" {
		q.Set("redirect_uri", k.redirectURL)
	}
	return k.oidcURL(endpoint) + "?" + q.Encode()
}

// SignUpURL points at the realm's registration page.
func (k *KeycloakClient) SignUpURL() string {
	return k.browserFlowURL("registrations")
}

// SignInURL points at the realm's login page.
func (k *KeycloakClient) SignInURL() string {
	return k.browserFlowURL("auth")
}

// IsSignedIn reports whether bearerToken is an active session token. An
// empty or inactive token is simply "not signed in"; only an unreachable
// provider is an error.
func (k *KeycloakClient) IsSignedIn(ctx context.Context, bearerToken string) (bool, error) {
	if strings.TrimSpace(bearerToken) == "" {
		return false, nil
	}
	if _, err := k.ValidateToken(ctx, bearerToken); err != nil {
		if errors.HasCode(err, errors.ErrCodeTokenInvalid) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ValidateToken checks if an access token is valid and active.
func (k *KeycloakClient) ValidateToken(ctx context.Context, token string) (*TokenInfo, error) {
	data := url.Values{}
	data.Set("token", token)
	data.Set("token_type_hint", "access_token")
	data.Set("client_id", k.clientID)
	data.Set("client_secret", k.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.oidcURL("token/introspect"), strings.NewReader(data.Encode()))
	if err != nil {
		return nil, errors.NewIdentityUnavailableError(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewIdentityUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		stdErr := errors.NewIdentityUnavailableError(fmt.Errorf("introspection status %d: %s", resp.StatusCode, string(body)))
		stdErr.Retryable = isTransientHTTPError(resp.StatusCode)
		return nil, stdErr
	}

	var tokenInfo TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return nil, errors.NewIdentityUnavailableError(fmt.Errorf("decode introspection response: %w", err))
	}

	if !tokenInfo.Active {
		return nil, errors.NewTokenInvalidError("token is expired, revoked or malformed")
	}

	return &tokenInfo, nil
}

func isTransientHTTPError(statusCode int) bool {
	switch statusCode {
	case http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// StaticIdentity is used when no Keycloak realm is configured: the
// affordance URLs are fixed and nobody is ever signed in.
type StaticIdentity struct {
	SignUp string
	SignIn string
}

func (s StaticIdentity) SignUpURL() string { return s.SignUp }
func (s StaticIdentity) SignInURL() string { return s.SignIn }
func (s StaticIdentity) IsSignedIn(context.Context, string) (bool, error) {
	return false, nil
}
