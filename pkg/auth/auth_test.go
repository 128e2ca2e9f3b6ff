package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key-32-chars-min!!!")

func TestGenerateAndParseToken_RoundTrip(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error = %v", err)
	}

	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken error = %v", err)
	}
	if claims.Subject != "alice" {
		t.Errorf("Subject = %q; want %q", claims.Subject, "alice")
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Errorf("unexpected expiry %v", claims.ExpiresAt)
	}
}

func TestGenerateToken_DefaultTTL(t *testing.T) {
	t.Parallel()

	token, err := GenerateToken(testSecret, "svc", 0)
	if err != nil {
		t.Fatalf("GenerateToken error = %v", err)
	}
	claims, err := ParseToken(testSecret, token)
	if err != nil {
		t.Fatalf("ParseToken error = %v", err)
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining < 23*time.Hour || remaining > DefaultTokenTTL {
		t.Errorf("expected ~24h ttl, got %v", remaining)
	}
}

func TestGenerateToken_Validation(t *testing.T) {
	t.Parallel()

	if _, err := GenerateToken(nil, "alice", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("expected ErrEmptySecret, got %v", err)
	}
	if _, err := GenerateToken(testSecret, "", time.Hour); err == nil {
		t.Error("expected error for empty subject")
	}
}

func TestParseToken_Rejects(t *testing.T) {
	t.Parallel()

	valid, err := GenerateToken(testSecret, "alice", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error = %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}})
	expiredStr, _ := expired.SignedString(testSecret)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	noSubjectStr, _ := noSubject.SignedString(testSecret)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
	hs512Str, _ := hs512.SignedString(testSecret)

	cases := map[string]struct {
		secret []byte
		token  string
	}{
		"empty token":     {testSecret, ""},
		"garbage":         {testSecret, "not.a.jwt"},
		"wrong secret":    {[]byte("another-secret"), valid},
		"expired":         {testSecret, expiredStr},
		"no subject":      {testSecret, noSubjectStr},
		"wrong algorithm": {testSecret, hs512Str},
		"empty secret":    {nil, valid},
	}
	for name, tc := range cases {
		if _, err := ParseToken(tc.secret, tc.token); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}
