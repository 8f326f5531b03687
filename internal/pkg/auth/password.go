package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sispe-project/sispe/internal/pkg/apperrors"
)

// BcryptCost is the work factor for the current hashing scheme
const BcryptCost = 12

// legacyHashLength is the hex length of the first-generation SHA-256 digests
const legacyHashLength = 64

// HashPassword hashes a password with the current scheme
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// IsLegacyHash reports whether a stored hash was written by the
// first-generation scheme (unsalted SHA-256, stored as lowercase hex).
func IsLegacyHash(stored string) bool {
	if len(stored) != legacyHashLength {
		return false
	}
	_, err := hex.DecodeString(stored)
	return err == nil
}

// legacyHash computes the first-generation digest of a password
func legacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword checks a password against a stored hash of either
// generation. It returns whether the password matched and whether the
// stored hash is in the legacy scheme, so the caller can rehash and
// persist the replacement on a successful legacy match.
// A stored hash that parses as neither scheme yields ErrCorruptCredential.
func VerifyPassword(stored, password string) (ok bool, legacy bool, err error) {
	if strings.HasPrefix(stored, "$2") {
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
		return err == nil, false, nil
	}

	if IsLegacyHash(stored) {
		computed := legacyHash(password)
		match := subtle.ConstantTimeCompare([]byte(stored), []byte(computed)) == 1
		return match, true, nil
	}

	return false, false, apperrors.ErrCorruptCredential
}

// LegacyHashForSeed exposes the first-generation digest for the bootstrap
// admin account, which is created exactly as the original tool wrote it.
func LegacyHashForSeed(password string) string {
	return legacyHash(password)
}
