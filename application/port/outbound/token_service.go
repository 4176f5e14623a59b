package outbound

import "time"

// TokenClaims is what an access token asserts about its bearer.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	// ExpiresAt is set on validated tokens and ignored when generating.
	ExpiresAt time.Time `json:"-"`
}

type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
