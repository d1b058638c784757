package auth

import (
	"testing"
	"time"
)

func TestVerifyHeaderAbsent(t *testing.T) {
	m := NewManager("test-secret-key", time.Minute)

	headers := []string{
		"",
		"asdasdadad",
		"Bearer",
		"Bearer ",
	}

	for _, h := range headers {
		v := m.VerifyHeader(h)

		if v.Kind != VerdictAbsent {
			t.Errorf("header %q: expected absent verdict, got %v", h, v.Kind)
		}
	}
}

func TestVerifyHeaderMalformed(t *testing.T) {
	m := NewManager("test-secret-key", time.Minute)

	headers := []string{
		"Bearer not_real_token",
		"i'm not a token",
		"Bearer eyJhbGciOiJIUzI1NiJ9.broken.sig",
	}

	for _, h := range headers {
		v := m.VerifyHeader(h)

		if v.Kind != VerdictMalformed {
			t.Errorf("header %q: expected malformed verdict, got %v", h, v.Kind)
		}
	}
}

func TestVerifyHeaderExpired(t *testing.T) {
	m := NewManager("test-secret-key", -time.Minute)

	raw, err := m.GenerateAccessToken("user-1")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	v := m.VerifyHeader("Bearer " + raw)

	if v.Kind != VerdictExpired {
		t.Fatalf("expected expired verdict, got %v", v.Kind)
	}
}

func TestVerifyHeaderValid(t *testing.T) {
	m := NewManager("test-secret-key", time.Minute)

	raw, err := m.GenerateAccessToken("user-1")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	v := m.VerifyHeader("Bearer " + raw)

	if v.Kind != VerdictValid {
		t.Fatalf("expected valid verdict, got %v", v.Kind)
	}

	if v.UserID != "user-1" {
		t.Fatalf("expected user-1, got %q", v.UserID)
	}
}

func TestVerifyHeaderWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Minute)
	verifier := NewManager("secret-b", time.Minute)

	raw, err := issuer.GenerateAccessToken("user-1")

	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	v := verifier.VerifyHeader("Bearer " + raw)

	if v.Kind != VerdictMalformed {
		t.Fatalf("expected malformed verdict for foreign signature, got %v", v.Kind)
	}
}

func TestRefreshTokens(t *testing.T) {
	m := NewManager("test-secret-key", time.Minute)

	a, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}

	b, err := m.NewRefreshToken()
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}

	if a == b {
		t.Fatal("two refresh tokens should never collide")
	}

	if m.HashRefreshToken(a) != m.HashRefreshToken(a) {
		t.Fatal("hash must be deterministic")
	}

	if m.HashRefreshToken(a) == m.HashRefreshToken(b) {
		t.Fatal("distinct tokens must hash differently")
	}
}
