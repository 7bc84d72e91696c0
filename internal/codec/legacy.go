package codec

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BAWimmer/lockbox/internal/common"
)

// Legacy is the compatibility codec. Encrypt XORs the plaintext with a
// cyclically repeated key and base64-encodes the result; Digest is an
// iterative polynomial hash with 32-bit signed wraparound. Do not use
// for new deployments unless interoperability with existing records is
// required.
type Legacy struct {
	now func() time.Time
}

func NewLegacy() *Legacy {
	return &Legacy{now: time.Now}
}

func (c *Legacy) Encrypt(plaintext, key string) (string, error) {
	if key == "" {
		return "", errors.New("empty transform key")
	}
	out := make([]byte, len(plaintext))
	for i := 0; i < len(plaintext); i++ {
		out[i] = plaintext[i] ^ key[i%len(key)]
	}
	return base64.StdEncoding.EncodeToString(out), nil
}

func (c *Legacy) Decrypt(ciphertext, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty transform key", common.ErrDecryption)
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i++ {
		out[i] = raw[i] ^ key[i%len(key)]
	}
	return string(out), nil
}

// Digest hashes the password with h = h*31 + byte over 32-bit signed
// arithmetic, seeded with the salt length, then base-36 and base64
// encodes the result.
func (c *Legacy) Digest(password string) string {
	h := int32(len(digestSalt))
	for i := 0; i < len(password); i++ {
		h = h*31 + int32(password[i])
	}
	encoded := strconv.FormatInt(int64(h), 36)
	return base64.StdEncoding.EncodeToString([]byte(encoded))
}

// NewTransformKey derives a key from the current time in base-36 plus a
// short random suffix. Coarse on purpose; the key is stored next to the
// ciphertext anyway.
func (c *Legacy) NewTransformKey() string {
	ts := strconv.FormatInt(c.now().UnixMilli(), 36)
	return ts + hex.EncodeToString(common.GenerateRandByteArray(4))
}

// UserID digests username+currentMillis and keeps a fixed-length prefix.
// Two calls with the same username yield different ids because the clock
// moves.
func (c *Legacy) UserID(username string) string {
	d := c.Digest(username + strconv.FormatInt(c.now().UnixMilli(), 10))
	if len(d) > userIDLength {
		d = d[:userIDLength]
	}
	return userIDPrefix + d
}
