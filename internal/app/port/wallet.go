package port

import (
	"context"
	"fmt"

	"token_creator/internal/domain/entity"
)

// ConnectResponse is what an authorized wallet hands back.
type ConnectResponse struct {
	PublicKey fmt.Stringer
}

// WalletCapability is the injected wallet the user authorizes against.
type WalletCapability interface {
	// Connect asks the wallet to authorize and return its public key.
	Connect(ctx context.Context) (ConnectResponse, error)
}

// WalletCapabilityProvider resolves the wallet available to a session.
type WalletCapabilityProvider interface {
	// Resolve returns nil when the host environment has no wallet.
	Resolve(sessionID string, req entity.ConnectRequest) WalletCapability
}
