package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt digest of plaintext at the given cost.
// A cost outside bcrypt's valid range falls back to the library default.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// ComparePassword reports whether plaintext matches the stored bcrypt digest.
func ComparePassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
