package entity

import (
	"net/url"
	"strings"
)

// NetworkDefinition describes the cluster tokens are created on and where its explorer lives.
type NetworkDefinition struct {
	Name             string `json:"name" yaml:"name"`
	Identifier       string `json:"identifier" yaml:"identifier"` // cluster query value, e.g. "devnet"
	NativeSymbol     string `json:"nativeSymbol" yaml:"nativeSymbol"`
	BlockExplorerURL string `json:"blockExplorerUrl" yaml:"blockExplorerUrl"`
}

// SolanaDevnet is the only network the creator targets.
var SolanaDevnet = NetworkDefinition{
	Name:             "Solana Devnet",
	Identifier:       "devnet",
	NativeSymbol:     "SOL",
	BlockExplorerURL: "https://explorer.solana.com",
}

// AddressURL builds the explorer page link for an address, e.g.
// https://explorer.solana.com/address/{address}?cluster=devnet
func (n NetworkDefinition) AddressURL(address string) string {
	base := strings.TrimRight(n.BlockExplorerURL, "/")
	link := base + "/address/" + url.PathEscape(address)
	if n.Identifier != "" {
		link += "?cluster=" + url.QueryEscape(n.Identifier)
	}
	return link
}
