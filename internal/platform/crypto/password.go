package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// NewHasher returns a bcrypt hasher with the given cost. Costs outside
// bcrypt's accepted range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) func(string) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return func(password string) (string, error) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return "", fmt.Errorf("hash password: %w", err)
		}
		return string(hashed), nil
	}
}
