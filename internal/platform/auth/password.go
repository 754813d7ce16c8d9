package auth

import (
	"github.com/alexedwards/argon2id"

	"github.com/diagnosis/local-hotel/pkg/config"
)

// PasswordHasher produces and checks PHC-encoded argon2id hashes. The cost
// parameters are embedded in every hash, so changing them only affects new
// hashes.
type PasswordHasher struct {
	params *argon2id.Params
}

func NewPasswordHasher(cfg config.Argon2Config) *PasswordHasher {
	return &PasswordHasher{params: &argon2id.Params{
		Memory:      cfg.Memory,
		Iterations:  cfg.Iterations,
		Parallelism: cfg.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	}}
}

// Hash uses a fresh random salt on every call.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	return argon2id.CreateHash(plaintext, h.params)
}

// Verify reports whether plaintext matches encoded. Malformed hashes and
// internal failures count as a mismatch.
func (h *PasswordHasher) Verify(plaintext, encoded string) bool {
	ok, err := argon2id.ComparePasswordAndHash(plaintext, encoded)
	return err == nil && ok
}
