package entity

import "errors"

// Errors surfaced to the user as error notifications. None of them is fatal to a view.
var (
	ErrMissingWalletCapability = errors.New("wallet capability not found")
	ErrConnectionRejected      = errors.New("wallet connection rejected")
	ErrWalletNotConnected      = errors.New("wallet not connected")
	ErrValidationFailed        = errors.New("token name and symbol are required")
	ErrCreationInProgress      = errors.New("token creation already in progress")
	ErrWorkflowFailure         = errors.New("token creation failed")
	ErrViewClosed              = errors.New("view closed")
)
