// Package codec implements the reversible obfuscation transform, the
// password digest, and user-id minting.
//
// Two implementations exist. Legacy reproduces the historical scheme
// byte for byte — XOR with a stored transform key and a polynomial
// password hash — so existing records keep working. It is NOT
// cryptographically secure and is kept only for compatibility. Hardened
// is the opt-in replacement (argon2id + AES-GCM); records written by one
// implementation cannot be read by the other.
package codec

// Codec is the transform contract consumed by the secure store and the
// auth service.
//
// Decrypt fails softly: malformed input yields ("", err) with the error
// matchable to common.ErrDecryption; callers log and treat the value as
// absent.
type Codec interface {
	Encrypt(plaintext, key string) (string, error)
	Decrypt(ciphertext, key string) (string, error)

	// Digest is a deterministic one-way transform of a password used for
	// equality comparison. Same password, same digest, always.
	Digest(password string) string

	// NewTransformKey mints a fresh per-write key for Encrypt.
	NewTransformKey() string

	// UserID mints a stable opaque id for a new user. Uniqueness relies
	// on the wall clock, not collision resistance.
	UserID(username string) string
}

// digestSalt is the fixed application-wide salt folded into every
// password digest. Changing it invalidates all stored digests.
const digestSalt = "lockbox_static_salt_v1"

// userIDPrefix tags minted user ids; userIDLength is the digest prefix
// kept after truncation.
const (
	userIDPrefix = "user_"
	userIDLength = 12
)
