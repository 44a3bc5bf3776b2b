package entity

// WalletSession tracks the connected wallet. Address is non-empty iff Connected is true.
type WalletSession struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address"`
}

// ConnectRequest is what the page reports about the injected wallet when the user clicks connect.
type ConnectRequest struct {
	Present   bool   `json:"present" form:"present"`
	PublicKey string `json:"publicKey" form:"publicKey"`
	Rejected  bool   `json:"rejected" form:"rejected"`
	Reason    string `json:"reason,omitempty" form:"reason"`
}
