package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fleettrack/fleettrack/application/port/outbound"
)

// Config is the subset of application config the token service needs.
type Config struct {
	Secret         string
	Algorithm      string
	AccessTokenTTL time.Duration
	Issuer         string
}

type JWTService struct {
	config     Config
	hmacSecret []byte
	now        func() time.Time
}

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

func NewJWTService(cfg Config) (*JWTService, error) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = "HS256"
	}
	if cfg.Algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported JWT algorithm: %s", cfg.Algorithm)
	}
	if cfg.Secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 15 * time.Minute
	}

	return &JWTService{
		config:     cfg,
		hmacSecret: []byte(cfg.Secret),
		now:        time.Now,
	}, nil
}

func (s *JWTService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	now := s.now()
	tokenClaims := jwt.MapClaims{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
		"exp":     now.Add(s.config.AccessTokenTTL).Unix(),
		"iat":     now.Unix(),
		"type":    "access",
	}
	if s.config.Issuer != "" {
		tokenClaims["iss"] = s.config.Issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return tokenString, nil
}

func (s *JWTService) ValidateAccessToken(tokenString string) (*outbound.TokenClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.hmacSecret, nil
	}, opts...)
	if err != nil {
		return nil, s.handleValidationError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ErrInvalidToken
	}

	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "access" {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	out := &outbound.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time.UTC()
	}
	return out, nil
}

func (s *JWTService) handleValidationError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrInvalidToken
}

var _ outbound.TokenService = (*JWTService)(nil)
