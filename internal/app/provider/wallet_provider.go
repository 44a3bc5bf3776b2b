package provider

import (
	"token_creator/internal/app/port"
	"token_creator/internal/domain/entity"
	"token_creator/internal/infrastructure/configloader"
	"token_creator/internal/infrastructure/wallet"
)

type walletProviderImpl struct {
	mode   string
	logger port.Logger
}

// NewWalletProvider creates a WalletCapabilityProvider for the configured wallet mode.
func NewWalletProvider(mode string, logger port.Logger) port.WalletCapabilityProvider {
	return &walletProviderImpl{mode: mode, logger: logger}
}

// Resolve returns the wallet capability for a connect attempt, or nil when the host has none.
func (p *walletProviderImpl) Resolve(sessionID string, req entity.ConnectRequest) port.WalletCapability {
	switch p.mode {
	case configloader.WalletModeDevnet:
		p.logger.Debug("Resolving devnet stand-in wallet", "session", sessionID)
		return wallet.NewDevnetWallet(sessionID)
	case configloader.WalletModeNone:
		p.logger.Debug("Wallet mode is none, no capability available", "session", sessionID)
		return nil
	default:
		capability := wallet.NewBrowserWallet(req)
		if capability == nil {
			p.logger.Debug("Page reported no injected wallet", "session", sessionID)
			return nil
		}
		p.logger.Debug("Resolving browser wallet bridge", "session", sessionID, "rejected", req.Rejected)
		return capability
	}
}
