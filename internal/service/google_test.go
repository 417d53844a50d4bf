package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const testClientID = "test-client-id"

func tokeninfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id_token"); got == "" {
			t.Error("tokeninfo called without id_token query parameter")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGoogleVerifierAccepts(t *testing.T) {
	srv := tokeninfoServer(t, http.StatusOK,
		`{"sub":"g1","email":"a@b.com","name":"Ada","aud":"test-client-id","email_verified":"true"}`)
	v := NewGoogleVerifierWithEndpoint(testClientID, srv.URL)

	claims, err := v.Verify(context.Background(), "token")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.Sub != "g1" {
		t.Errorf("Sub = %q, want g1", claims.Sub)
	}
	if claims.Email != "a@b.com" {
		t.Errorf("Email = %q, want a@b.com", claims.Email)
	}
	if claims.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", claims.Name)
	}
}

func TestGoogleVerifierSkipsAudCheckWithoutClientID(t *testing.T) {
	srv := tokeninfoServer(t, http.StatusOK,
		`{"sub":"g1","email":"a@b.com","aud":"someone-else","email_verified":"true"}`)
	v := NewGoogleVerifierWithEndpoint("", srv.URL)

	if _, err := v.Verify(context.Background(), "token"); err != nil {
		t.Fatalf("Verify() without configured client id error = %v", err)
	}
}

func TestGoogleVerifierRejects(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusBadRequest, `{"error":"invalid_token"}`},
		{"server error", http.StatusInternalServerError, ``},
		{"malformed body", http.StatusOK, `not json`},
		{"aud mismatch", http.StatusOK, `{"sub":"g1","email":"a@b.com","aud":"other","email_verified":"true"}`},
		{"email unverified", http.StatusOK, `{"sub":"g1","email":"a@b.com","aud":"test-client-id","email_verified":"false"}`},
		{"email_verified missing", http.StatusOK, `{"sub":"g1","email":"a@b.com","aud":"test-client-id"}`},
		{"sub missing", http.StatusOK, `{"email":"a@b.com","aud":"test-client-id","email_verified":"true"}`},
		{"email missing", http.StatusOK, `{"sub":"g1","aud":"test-client-id","email_verified":"true"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := tokeninfoServer(t, tt.status, tt.body)
			v := NewGoogleVerifierWithEndpoint(testClientID, srv.URL)

			if _, err := v.Verify(context.Background(), "token"); !errors.Is(err, ErrInvalidGoogleToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidGoogleToken", err)
			}
		})
	}
}

func TestGoogleVerifierRejectsOnNetworkFailure(t *testing.T) {
	srv := tokeninfoServer(t, http.StatusOK, `{}`)
	srv.Close()
	v := NewGoogleVerifierWithEndpoint(testClientID, srv.URL)

	if _, err := v.Verify(context.Background(), "token"); !errors.Is(err, ErrInvalidGoogleToken) {
		t.Errorf("Verify() after server shutdown error = %v, want ErrInvalidGoogleToken", err)
	}
}
