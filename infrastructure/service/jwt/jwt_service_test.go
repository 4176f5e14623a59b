package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fleettrack/fleettrack/application/port/outbound"
)

func TestJWTService(t *testing.T) {
	cfg := Config{
		Secret:         "test-secret",
		Algorithm:      "HS256",
		AccessTokenTTL: time.Hour,
		Issuer:         "fleettrack",
	}

	service, err := NewJWTService(cfg)
	if err != nil {
		t.Fatalf("Failed to create JWT service: %v", err)
	}

	t.Run("GenerateAccessToken", func(t *testing.T) {
		token, err := service.GenerateAccessToken(outbound.TokenClaims{UserID: "user123", Role: "admin"})
		if err != nil {
			t.Errorf("Failed to generate access token: %v", err)
		}
		if token == "" {
			t.Error("Access token should not be empty")
		}
	})

	t.Run("ValidateAccessTokenCarriesRole", func(t *testing.T) {
		tokenString, err := service.GenerateAccessToken(outbound.TokenClaims{UserID: "user123", Email: "ops@fleet.io", Role: "manager"})
		if err != nil {
			t.Fatalf("Failed to generate token: %v", err)
		}

		claims, err := service.ValidateAccessToken(tokenString)
		if err != nil {
			t.Fatalf("Failed to validate token: %v", err)
		}
		if claims.UserID != "user123" || claims.Email != "ops@fleet.io" || claims.Role != "manager" {
			t.Errorf("Unexpected claims %+v", claims)
		}
		if d := time.Until(claims.ExpiresAt); d <= 0 || d > time.Hour {
			t.Errorf("Unexpected expiry %v", claims.ExpiresAt)
		}
	})

	t.Run("ValidateInvalidToken", func(t *testing.T) {
		_, err := service.ValidateAccessToken("invalid-token")
		if err != ErrInvalidToken {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateTokenWithOtherSecret", func(t *testing.T) {
		other, err := NewJWTService(Config{Secret: "other-secret", Issuer: "fleettrack"})
		if err != nil {
			t.Fatalf("Failed to create JWT service: %v", err)
		}
		token, _ := other.GenerateAccessToken(outbound.TokenClaims{UserID: "user123"})
		if _, err := service.ValidateAccessToken(token); err != ErrInvalidToken {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateNonAccessToken", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": "user123",
			"type":    "refresh",
			"iss":     "fleettrack",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})
		signed, _ := token.SignedString([]byte(cfg.Secret))
		if _, err := service.ValidateAccessToken(signed); err != ErrInvalidToken {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("ValidateExpiredToken", func(t *testing.T) {
		past, err := NewJWTService(cfg)
		if err != nil {
			t.Fatalf("Failed to create JWT service: %v", err)
		}
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

		token, err := past.GenerateAccessToken(outbound.TokenClaims{UserID: "user123"})
		if err != nil {
			t.Fatalf("Failed to generate access token: %v", err)
		}

		if _, err := service.ValidateAccessToken(token); err != ErrTokenExpired {
			t.Errorf("Expected ErrTokenExpired, got %v", err)
		}
	})
}

func TestNewJWTServiceRejectsUnsupportedAlgorithm(t *testing.T) {
	if _, err := NewJWTService(Config{Secret: "s", Algorithm: "RS256"}); err == nil {
		t.Error("Expected error for RS256 without key material")
	}
	if _, err := NewJWTService(Config{Algorithm: "HS256"}); err == nil {
		t.Error("Expected error for missing secret")
	}
}
