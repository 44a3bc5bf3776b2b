package port

import (
	"context"

	"token_creator/internal/domain/entity"
)

// TokenCreatorView owns the state of one visitor's token creator form.
// Every user-facing error is also surfaced as an error notification.
type TokenCreatorView interface {
	// Connect authorizes against the wallet. A nil capability means no wallet is installed.
	Connect(ctx context.Context, capability WalletCapability) error
	// Disconnect clears the wallet session and any created token.
	Disconnect()
	// UpdateDraft applies form input to the draft.
	UpdateDraft(update entity.DraftUpdate) entity.TokenDraft
	// CreateToken validates the draft and starts the creation workflow in the background.
	CreateToken() error
	// State returns a snapshot of the view.
	State() entity.ViewState
	// Subscribe returns a channel signalled after every state change and a func to unsubscribe.
	Subscribe() (<-chan struct{}, func())
	// Close stops timers and cancels any in-flight creation.
	Close()
}

// SessionRegistry maps browser sessions to their views.
type SessionRegistry interface {
	// Acquire returns the view for sessionID, creating a new session when it is unknown or expired.
	Acquire(sessionID string) (string, TokenCreatorView)
	Count() int
}
