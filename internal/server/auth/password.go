package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt digest from plaintext using the given cost.
// The per-password salt is generated by bcrypt and embedded in the digest.
// Plaintext is never stored or logged.
func HashPassword(plaintext string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the bcrypt digest.
// The comparison is constant-time inside bcrypt. Malformed digests yield
// false rather than an error: the digest may be attacker-controlled and
// must never abort the login path.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
