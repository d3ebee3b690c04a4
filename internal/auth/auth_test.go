package auth_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boratech/exportdesk/internal/auth"
	"github.com/boratech/exportdesk/internal/regions"
	"github.com/boratech/exportdesk/pkg/routes"
)

func testConfig(t *testing.T) *auth.Config {
	t.Helper()

	cfg := &auth.Config{
		Secret:   "test-secret",
		TokenTTL: "1h",
		Credentials: map[string]auth.Credential{
			"russia": {Email: "russia@example.com", Password: "ru-pass"},
			"dubai":  {Email: "dubai@example.com", Password: "du-pass"},
		},
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("config finalize failed: %v", err)
	}
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogin(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())

	session, err := sys.Login(auth.LoginCommand{
		Email:    "russia@example.com",
		Password: "ru-pass",
		Region:   "russia",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if session.Token == "" {
		t.Error("expected session token")
	}
	if session.Region != regions.Russia {
		t.Errorf("region = %s, want russia", session.Region)
	}
	if session.Email != "russia@example.com" {
		t.Errorf("email = %s", session.Email)
	}
	if !session.ExpiresAt.After(time.Now()) {
		t.Error("session already expired")
	}
}

func TestLoginRejections(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())

	tests := []struct {
		name string
		cmd  auth.LoginCommand
		want error
	}{
		{
			name: "wrong password",
			cmd:  auth.LoginCommand{Email: "russia@example.com", Password: "nope", Region: "russia"},
			want: auth.ErrInvalidCredentials,
		},
		{
			name: "wrong email",
			cmd:  auth.LoginCommand{Email: "other@example.com", Password: "ru-pass", Region: "russia"},
			want: auth.ErrInvalidCredentials,
		},
		{
			name: "credentials from other region",
			cmd:  auth.LoginCommand{Email: "dubai@example.com", Password: "du-pass", Region: "russia"},
			want: auth.ErrInvalidCredentials,
		},
		{
			name: "unknown region",
			cmd:  auth.LoginCommand{Email: "russia@example.com", Password: "ru-pass", Region: "mars"},
			want: regions.ErrInvalidRegion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sys.Login(tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())

	session, err := sys.Login(auth.LoginCommand{
		Email:    "dubai@example.com",
		Password: "du-pass",
		Region:   "dubai",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := sys.Verify(session.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if claims.Region != "dubai" {
		t.Errorf("claims region = %s, want dubai", claims.Region)
	}
	if claims.Subject != "dubai@example.com" {
		t.Errorf("claims subject = %s", claims.Subject)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())

	session, err := sys.Login(auth.LoginCommand{
		Email:    "russia@example.com",
		Password: "ru-pass",
		Region:   "russia",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	tampered := session.Token + "x"
	if _, err := sys.Verify(tampered); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("verify error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	issuing := auth.New(testConfig(t), testLogger())

	other := testConfig(t)
	other.Secret = "different-secret"
	verifying := auth.New(other, testLogger())

	session, err := issuing.Login(auth.LoginCommand{
		Email:    "russia@example.com",
		Password: "ru-pass",
		Region:   "russia",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := verifying.Verify(session.Token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("verify error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())
	if _, err := sys.Verify("not-a-token"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("verify error = %v, want ErrInvalidToken", err)
	}
}

func TestLoginEndpoint(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	server := httptest.NewServer(mux)
	defer server.Close()

	body := strings.NewReader(`{"email":"russia@example.com","password":"ru-pass","region":"russia"}`)
	resp, err := http.Post(server.URL+"/auth/login", "application/json", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var session auth.Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if session.Token == "" {
		t.Error("expected token in response")
	}
}

func TestLoginEndpointUnauthorized(t *testing.T) {
	sys := auth.New(testConfig(t), testLogger())

	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	server := httptest.NewServer(mux)
	defer server.Close()

	body := strings.NewReader(`{"email":"russia@example.com","password":"wrong","region":"russia"}`)
	resp, err := http.Post(server.URL+"/auth/login", "application/json", body)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     auth.Config
		wantErr string
	}{
		{
			name:    "missing secret",
			cfg:     auth.Config{TokenTTL: "1h"},
			wantErr: "secret required",
		},
		{
			name:    "bad ttl",
			cfg:     auth.Config{Secret: "s", TokenTTL: "soon"},
			wantErr: "invalid token_ttl",
		},
		{
			name: "unknown credential region",
			cfg: auth.Config{
				Secret:      "s",
				Credentials: map[string]auth.Credential{"mars": {Email: "a", Password: "b"}},
			},
			wantErr: "unknown region",
		},
		{
			name: "incomplete credentials",
			cfg: auth.Config{
				Secret:      "s",
				Credentials: map[string]auth.Credential{"russia": {Email: "a"}},
			},
			wantErr: "incomplete credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Finalize(nil)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("TEST_AUTH_SECRET", "env-secret")
	t.Setenv("TEST_AUTH_TTL", "2h")

	cfg := auth.Config{Secret: "file-secret"}
	env := &auth.Env{Secret: "TEST_AUTH_SECRET", TokenTTL: "TEST_AUTH_TTL"}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Secret != "env-secret" {
		t.Errorf("secret = %s, want env-secret", cfg.Secret)
	}
	if cfg.TokenTTL != "2h" {
		t.Errorf("token_ttl = %s, want 2h", cfg.TokenTTL)
	}
}
