package service

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"time"
)

// TokeninfoURL is Google's ID token introspection endpoint.
const TokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

// googleTimeout bounds the single outbound verification call.
const googleTimeout = 10 * time.Second

// GoogleClaims is the subset of the tokeninfo response the reconciler
// needs. All values arrive as strings, including email_verified.
type GoogleClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Aud           string `json:"aud"`
	EmailVerified string `json:"email_verified"`
}

// GoogleVerifier validates a Google-issued ID token against the tokeninfo
// endpoint. Every failure mode returns ErrInvalidGoogleToken; transport and
// parse errors never escape the boundary.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleClaims, error)
}

type googleVerifier struct {
	client   *http.Client
	endpoint string
	clientID string
}

// NewGoogleVerifier creates a verifier bound to the given OAuth client id.
// An empty client id disables the aud check.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{
		client:   &http.Client{Timeout: googleTimeout},
		endpoint: TokeninfoURL,
		clientID: clientID,
	}
}

// NewGoogleVerifierWithEndpoint is used by tests to point verification at a
// local server.
func NewGoogleVerifierWithEndpoint(clientID, endpoint string) GoogleVerifier {
	return &googleVerifier{
		client:   &http.Client{Timeout: googleTimeout},
		endpoint: endpoint,
		clientID: clientID,
	}
}

func (v *googleVerifier) Verify(ctx context.Context, idToken string) (*GoogleClaims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.endpoint, nil)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}
	query := url.Values{"id_token": {idToken}}
	req.URL.RawQuery = query.Encode()

	resp, err := v.client.Do(req)
	if err != nil {
		log.Printf("google tokeninfo request failed: %v", err)
		return nil, ErrInvalidGoogleToken
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("google tokeninfo returned status %d", resp.StatusCode)
		return nil, ErrInvalidGoogleToken
	}

	var claims GoogleClaims
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		log.Printf("google tokeninfo body did not parse: %v", err)
		return nil, ErrInvalidGoogleToken
	}

	if v.clientID != "" && claims.Aud != v.clientID {
		return nil, ErrInvalidGoogleToken
	}
	if claims.EmailVerified != "true" {
		return nil, ErrInvalidGoogleToken
	}
	if claims.Sub == "" || claims.Email == "" {
		return nil, ErrInvalidGoogleToken
	}

	return &claims, nil
}
