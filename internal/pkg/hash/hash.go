package hash

// Hash hashes and verifies secrets. Implementations must be safe for
// concurrent use.
type Hash interface {
	// Hash hashes the plaintext and returns the encoded digest.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the previously hashed value.
	Verify(hashed, plaintext string) bool
}
