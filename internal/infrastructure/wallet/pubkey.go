package wallet

import (
	"fmt"
	"strings"

	"filippo.io/edwards25519"
	"github.com/mr-tron/base58"
)

// PublicKeySize is the size of a Solana account public key.
const PublicKeySize = 32

// PublicKey is an ed25519 account public key.
type PublicKey [PublicKeySize]byte

// String encodes the key in base58, the way wallets display it.
func (k PublicKey) String() string {
	return base58.Encode(k[:])
}

// ParsePublicKey decodes a base58 public key and checks it is a point on the ed25519 curve.
func ParsePublicKey(s string) (PublicKey, error) {
	var key PublicKey

	s = strings.TrimSpace(s)
	if s == "" {
		return key, fmt.Errorf("empty public key")
	}
	decoded, err := base58.Decode(s)
	if err != nil {
		return key, fmt.Errorf("decode base58 public key: %w", err)
	}
	if len(decoded) != PublicKeySize {
		return key, fmt.Errorf("public key must be %d bytes, got %d", PublicKeySize, len(decoded))
	}
	if _, err := new(edwards25519.Point).SetBytes(decoded); err != nil {
		return key, fmt.Errorf("public key is not on the ed25519 curve: %w", err)
	}

	copy(key[:], decoded)
	return key, nil
}
