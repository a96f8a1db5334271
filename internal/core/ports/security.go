package ports

// PasswordHasher turns plaintext passwords into storable digests and
// checks a plaintext against a stored digest.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns false for any mismatch; an error means the digest
	// itself is unusable, not that the password was wrong.
	Verify(plaintext, digest string) (bool, error)
}

// TokenClaims is the set of fields embedded in an issued bearer token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenIssuer produces signed, time-limited bearer tokens. The signing
// secret and expiry are fixed at construction.
type TokenIssuer interface {
	Issue(claims TokenClaims) (string, error)
}
