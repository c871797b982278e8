package main

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"alice@x.com", true},
		{"a.b+tag@sub.example.co.uk", true},
		{"", false},
		{"alice", false},
		{"alice@", false},
		{"@x.com", false},
		{"alice@x", false},
		{"alice @x.com", false},
		{"alice@x .com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := isValidEmail(tt.email); got != tt.valid {
				t.Errorf("isValidEmail(%q) = %v, want %v", tt.email, got, tt.valid)
			}
		})
	}
}

func TestIsStrongPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		strong   bool
	}{
		{"all requirements", "Str0ng!Pw", true},
		{"too short", "S0!a", false},
		{"no uppercase", "str0ng!pw", false},
		{"no digit", "Strong!Pw", false},
		{"no symbol", "Str0ngPwd", false},
		{"empty", "", false},
		{"exactly eight", "Abcdef1!", true},
		{"over bcrypt limit", "A1!" + string(make([]byte, 80)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isStrongPassword(tt.password); got != tt.strong {
				t.Errorf("isStrongPassword(%q) = %v, want %v", tt.password, got, tt.strong)
			}
		})
	}
}
