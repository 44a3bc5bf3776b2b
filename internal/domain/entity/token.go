package entity

import (
	"strings"
	"time"
)

// Default values the form starts with.
const (
	DefaultTokenDecimals = "9"
	DefaultTokenSupply   = "1000"
)

// TokenDraft holds the editable token metadata. Decimals and Supply stay raw strings:
// their bounds ([0,18] and >= 1) are only hinted by the input controls.
type TokenDraft struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals string `json:"decimals"`
	Supply   string `json:"supply"`
}

// NewTokenDraft returns an empty draft with the default decimals and supply.
func NewTokenDraft() TokenDraft {
	return TokenDraft{
		Decimals: DefaultTokenDecimals,
		Supply:   DefaultTokenSupply,
	}
}

// DraftUpdate carries a partial change of a TokenDraft. Nil fields are left untouched.
type DraftUpdate struct {
	Name     *string `json:"name,omitempty"`
	Symbol   *string `json:"symbol,omitempty"`
	Decimals *string `json:"decimals,omitempty"`
	Supply   *string `json:"supply,omitempty"`
}

// Apply returns a copy of the draft with the update applied. The symbol is always upper-cased.
func (d TokenDraft) Apply(u DraftUpdate) TokenDraft {
	if u.Name != nil {
		d.Name = *u.Name
	}
	if u.Symbol != nil {
		d.Symbol = strings.ToUpper(*u.Symbol)
	}
	if u.Decimals != nil {
		d.Decimals = *u.Decimals
	}
	if u.Supply != nil {
		d.Supply = *u.Supply
	}
	return d
}

// Validate checks the only rule enforced at submission time: name and symbol must not be blank.
func (d TokenDraft) Validate() error {
	if strings.TrimSpace(d.Name) == "" || strings.TrimSpace(d.Symbol) == "" {
		return ErrValidationFailed
	}
	return nil
}

// CreatedToken is the result of a finished creation workflow.
type CreatedToken struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Symbol    string    `json:"symbol"`
	Decimals  string    `json:"decimals"`
	Supply    string    `json:"supply"`
	CreatedAt time.Time `json:"createdAt"`
}
