package port

import (
	"context"

	"token_creator/internal/domain/entity"
)

// TokenMinter performs the (simulated) token creation round-trip.
type TokenMinter interface {
	Mint(ctx context.Context, draft entity.TokenDraft) (entity.CreatedToken, error)
}
