package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestService_GenerateAndValidateToken(t *testing.T) {
	secret := "test-secret-at-least-32-chars-long!!"
	s := NewService(secret, "padel-ladder")

	tests := []struct {
		name        string
		actorID     string
		role        Role
		ttl         time.Duration
		validator   Service
		rawToken    string
		expectedErr error
		wantAdmin   bool
	}{
		{
			name:    "player token",
			actorID: "user-123",
			role:    RolePlayer,
			ttl:     time.Hour,
		},
		{
			name:      "admin token",
			actorID:   "admin-1",
			role:      RoleAdmin,
			ttl:       time.Hour,
			wantAdmin: true,
		},
		{
			name:        "expired token",
			actorID:     "user-123",
			role:        RolePlayer,
			ttl:         -time.Hour,
			expectedErr: ErrExpiredToken,
		},
		{
			name:        "invalid signature",
			actorID:     "user-123",
			role:        RolePlayer,
			ttl:         time.Hour,
			validator:   NewService("wrong-secret", "padel-ladder"),
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "wrong issuer",
			actorID:     "user-123",
			role:        RolePlayer,
			ttl:         time.Hour,
			validator:   NewService(secret, "someone-else"),
			expectedErr: ErrInvalidToken,
		},
		{
			name:        "missing subject",
			actorID:     "",
			role:        RolePlayer,
			ttl:         time.Hour,
			expectedErr: ErrMissingSubject,
		},
		{
			name:        "malformed token",
			rawToken:    "not.a.jwt",
			expectedErr: ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := tt.rawToken
			if token == "" {
				var err error
				token, err = s.GenerateToken(tt.actorID, tt.role, tt.ttl)
				if err != nil {
					t.Fatalf("failed to generate token: %v", err)
				}
			}

			validator := s
			if tt.validator != nil {
				validator = tt.validator
			}

			claims, err := validator.ValidateToken(token)
			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if claims.Subject != tt.actorID {
				t.Errorf("expected subject %s, got %s", tt.actorID, claims.Subject)
			}
			if claims.IsAdmin() != tt.wantAdmin {
				t.Errorf("expected admin=%v, got %v", tt.wantAdmin, claims.IsAdmin())
			}
		})
	}
}
