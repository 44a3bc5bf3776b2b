package entity

// ViewState is a point-in-time copy of everything a TokenCreatorView renders.
type ViewState struct {
	Session      WalletSession `json:"session"`
	Draft        TokenDraft    `json:"draft"`
	Notification *Notification `json:"notification,omitempty"`
	CreatedToken *CreatedToken `json:"createdToken,omitempty"`
	IsCreating   bool          `json:"isCreating"`
}

// SubmitDisabled reports whether the create control must be disabled.
func (s ViewState) SubmitDisabled() bool {
	return s.IsCreating || !s.Session.Connected
}
