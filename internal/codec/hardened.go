package codec

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/argon2"

	"github.com/BAWimmer/lockbox/internal/common"
)

// Hardened is the vetted replacement codec: argon2id digests and AES-GCM
// encryption with a random 32-byte transform key. Not interoperable with
// records written by Legacy.
type Hardened struct {
	now func() time.Time
}

func NewHardened() *Hardened {
	return &Hardened{now: time.Now}
}

func (c *Hardened) aead(key string) (cipher.AEAD, error) {
	k := sha256.Sum256([]byte(key))
	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (c *Hardened) Encrypt(plaintext, key string) (string, error) {
	aead, err := c.aead(key)
	if err != nil {
		return "", err
	}
	nonce := common.GenerateRandByteArray(aead.NonceSize())
	sealed := aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *Hardened) Decrypt(ciphertext, key string) (string, error) {
	aead, err := c.aead(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	if len(raw) < aead.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext too short", common.ErrDecryption)
	}
	nonce, sealed := raw[:aead.NonceSize()], raw[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return string(plain), nil
}

// Digest derives a deterministic argon2id key from the password and the
// fixed application salt.
func (c *Hardened) Digest(password string) string {
	d := argon2.IDKey([]byte(password), []byte(digestSalt), 1, 64*1024, 4, 32)
	return hex.EncodeToString(d)
}

func (c *Hardened) NewTransformKey() string {
	return hex.EncodeToString(common.GenerateRandByteArray(32))
}

// UserID keeps the same shape as the legacy ids so the persisted layout
// stays uniform across codecs.
func (c *Hardened) UserID(username string) string {
	sum := sha256.Sum256([]byte(username + strconv.FormatInt(c.now().UnixMilli(), 10)))
	return userIDPrefix + hex.EncodeToString(sum[:])[:userIDLength]
}
