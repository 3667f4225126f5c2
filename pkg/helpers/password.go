package helpers

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher is the pluggable digest scheme used by the identity
// store. Implementations must be one-way; Compare decides login.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// SHA256Hasher is the default scheme: an unsalted hex digest, so the
// same password always yields the same hash and login reduces to an
// equality check. Kept for compatibility with existing stored hashes.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plain string) (string, error) {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:]), nil
}

func (SHA256Hasher) Compare(hash, plain string) bool {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:]) == hash
}

// BcryptHasher is the salted alternative, selected with
// PASSWORD_SCHEME=bcrypt. Hashes produced by one scheme do not
// validate under the other.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (BcryptHasher) Compare(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// NewPasswordHasher picks the hasher for a PASSWORD_SCHEME value,
// defaulting to sha256 for anything unrecognized.
func NewPasswordHasher(scheme string) PasswordHasher {
	if scheme == "bcrypt" {
		return BcryptHasher{}
	}
	return SHA256Hasher{}
}
