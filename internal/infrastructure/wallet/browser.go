package wallet

import (
	"context"
	"fmt"

	"token_creator/internal/app/port"
	"token_creator/internal/domain/entity"
)

// BrowserWallet replays the outcome of window.solana.connect() as reported by the page.
type BrowserWallet struct {
	req entity.ConnectRequest
}

// NewBrowserWallet returns nil when the page reported no injected wallet.
func NewBrowserWallet(req entity.ConnectRequest) port.WalletCapability {
	if !req.Present {
		return nil
	}
	return &BrowserWallet{req: req}
}

// Connect returns the reported public key, or ErrConnectionRejected when the user
// declined or the key is malformed.
func (w *BrowserWallet) Connect(ctx context.Context) (port.ConnectResponse, error) {
	if err := ctx.Err(); err != nil {
		return port.ConnectResponse{}, err
	}
	if w.req.Rejected {
		reason := w.req.Reason
		if reason == "" {
			reason = "user rejected the request"
		}
		return port.ConnectResponse{}, fmt.Errorf("%w: %s", entity.ErrConnectionRejected, reason)
	}

	key, err := ParsePublicKey(w.req.PublicKey)
	if err != nil {
		return port.ConnectResponse{}, fmt.Errorf("%w: %v", entity.ErrConnectionRejected, err)
	}
	return port.ConnectResponse{PublicKey: key}, nil
}
