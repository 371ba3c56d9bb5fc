package auth

import "golang.org/x/crypto/bcrypt"

// HashCode hashes an OTP code for storage. cost <= 0 uses bcrypt.DefaultCost.
func HashCode(code string, cost int) ([]byte, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	return bcrypt.GenerateFromPassword([]byte(code), cost)
}

// CompareCode reports whether code matches the stored hash.
func CompareCode(hash []byte, code string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(code)) == nil
}
