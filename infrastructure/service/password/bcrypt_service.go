package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/fleettrack/fleettrack/application/port/outbound"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService uses bcrypt.DefaultCost for 0 and clamps other values
// into bcrypt's accepted range.
func NewBcryptPasswordService(cost int) *BcryptPasswordService {
	switch {
	case cost == 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &BcryptPasswordService{cost: cost}
}

func (s *BcryptPasswordService) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *BcryptPasswordService) Matches(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Cost is the work factor new hashes are created with.
func (s *BcryptPasswordService) Cost() int {
	return s.cost
}

var _ outbound.PasswordService = (*BcryptPasswordService)(nil)
