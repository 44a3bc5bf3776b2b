package wallet

import (
	"context"
	"crypto/sha512"
	"fmt"

	"filippo.io/edwards25519"

	"token_creator/internal/app/port"
)

// DevnetWallet is a server-side stand-in for a browser extension. Its public key is
// derived from a seed (the session id) so the same session always sees the same
// address. It never signs anything.
type DevnetWallet struct {
	seed string
}

// NewDevnetWallet creates a stand-in wallet bound to seed.
func NewDevnetWallet(seed string) *DevnetWallet {
	return &DevnetWallet{seed: seed}
}

// PublicKey derives the wallet key: sha512(seed) reduced to a scalar, times the base point.
func (w *DevnetWallet) PublicKey() (PublicKey, error) {
	var key PublicKey

	digest := sha512.Sum512([]byte("token-creator/devnet-wallet/" + w.seed))
	scalar, err := edwards25519.NewScalar().SetUniformBytes(digest[:])
	if err != nil {
		return key, fmt.Errorf("derive devnet wallet scalar: %w", err)
	}
	point := new(edwards25519.Point).ScalarBaseMult(scalar)
	copy(key[:], point.Bytes())
	return key, nil
}

// Connect authorizes immediately.
func (w *DevnetWallet) Connect(ctx context.Context) (port.ConnectResponse, error) {
	if err := ctx.Err(); err != nil {
		return port.ConnectResponse{}, err
	}
	key, err := w.PublicKey()
	if err != nil {
		return port.ConnectResponse{}, err
	}
	return port.ConnectResponse{PublicKey: key}, nil
}
