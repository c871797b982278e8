package main

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := hashPassword("Str0ng!Pw")
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	if strings.Contains(string(hash), "Str0ng!Pw") {
		t.Error("hash contains the plaintext password")
	}
	if !verifyPassword("Str0ng!Pw", hash) {
		t.Error("correct password did not verify")
	}
	if verifyPassword("Wr0ng!Pw!", hash) {
		t.Error("wrong password verified")
	}
}

func TestIssueAndVerifyToken(t *testing.T) {
	const secret = "test-secret"
	token, err := issueToken(secret, 42, "alice")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	claims, err := verifyToken(secret, token)
	if err != nil {
		t.Fatalf("verifyToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
}

func TestVerifyTokenRejections(t *testing.T) {
	const secret = "test-secret"

	valid, err := issueToken(secret, 1, "alice")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID:   1,
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	expiredStr, err := expired.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{"garbage", "not-a-token", errTokenInvalid},
		{"wrong secret", mustIssue(t, "other-secret", 1, "alice"), errTokenInvalid},
		{"tampered payload", tamper(valid), errTokenInvalid},
		{"expired", expiredStr, errTokenExpired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := verifyToken(secret, tt.token)
			if err != tt.wantErr {
				t.Errorf("verifyToken error = %v, want %v", err, tt.wantErr)
			}
			if claims != nil {
				t.Errorf("verifyToken claims = %+v, want nil", claims)
			}
		})
	}
}

func mustIssue(t *testing.T, secret string, userID int, username string) string {
	t.Helper()
	token, err := issueToken(secret, userID, username)
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}
	return token
}

// tamper flips a character in the payload segment, keeping the signature.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
