package codec

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BAWimmer/lockbox/internal/common"
)

func TestLegacy_EncryptDecrypt_RoundTrip(t *testing.T) {
	c := NewLegacy()

	tests := []struct {
		name  string
		value string
		key   string
	}{
		{"simple", "hello world", "k3y"},
		{"empty value", "", "key"},
		{"key longer than value", "ab", "a-much-longer-key"},
		{"punctuation", `{"username":"demo_user","id":42}`, "x"},
		{"full printable ascii", " !\"#$%&'()*+,-./0123456789:;<=>?@AZ[\\]^_`az{|}~", "s3cr3t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := c.Encrypt(tt.value, tt.key)
			require.NoError(t, err)

			dec, err := c.Decrypt(enc, tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.value, dec)
		})
	}
}

func TestLegacy_Encrypt_EmptyKeyRejected(t *testing.T) {
	c := NewLegacy()
	_, err := c.Encrypt("value", "")
	require.Error(t, err)
}

func TestLegacy_Decrypt_MalformedInput(t *testing.T) {
	c := NewLegacy()

	v, err := c.Decrypt("%%%not-base64%%%", "key")
	require.Error(t, err)
	require.True(t, errors.Is(err, common.ErrDecryption))
	require.Empty(t, v)
}

func TestLegacy_Decrypt_WrongKeyStillDecodes(t *testing.T) {
	// XOR has no integrity check: a wrong key produces garbage, not an
	// error. Documented behavior of the compatibility scheme.
	c := NewLegacy()

	enc, err := c.Encrypt("plaintext", "right")
	require.NoError(t, err)

	dec, err := c.Decrypt(enc, "wrong")
	require.NoError(t, err)
	assert.NotEqual(t, "plaintext", dec)
}

func TestLegacy_Digest_Deterministic(t *testing.T) {
	c := NewLegacy()

	require.Equal(t, c.Digest("SecurePass123!"), c.Digest("SecurePass123!"))

	samples := []string{"SecurePass123!", "OtherPass456$", "Aa1bbbbb", "Aa1bbbbc", ""}
	seen := map[string]string{}
	for _, p := range samples {
		d := c.Digest(p)
		prev, dup := seen[d]
		require.False(t, dup, "digest collision between %q and %q", prev, p)
		seen[d] = p
	}
}

func TestLegacy_Digest_NegativeWraparound(t *testing.T) {
	// Long inputs overflow into negative int32 territory; the base-36
	// encoding carries the sign and the digest must stay stable.
	c := NewLegacy()
	long := strings.Repeat("Wraparound1", 20)
	require.Equal(t, c.Digest(long), c.Digest(long))
	require.NotEmpty(t, c.Digest(long))
}

func TestLegacy_NewTransformKey_FreshPerCall(t *testing.T) {
	c := NewLegacy()
	a := c.NewTransformKey()
	b := c.NewTransformKey()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestLegacy_UserID_ShapeAndClockDependence(t *testing.T) {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	c := NewLegacy()
	c.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Millisecond)
	}

	a := c.UserID("demo_user")
	b := c.UserID("demo_user")

	require.True(t, strings.HasPrefix(a, "user_"))
	require.LessOrEqual(t, len(a), len("user_")+userIDLength)
	assert.NotEqual(t, a, b, "same username on a moving clock must mint distinct ids")
}
