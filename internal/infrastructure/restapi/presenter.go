package restapi

import (
	"token_creator/internal/domain/entity"
	"token_creator/internal/pkg/utils"
)

// SVG path data of the page icons.
const (
	IconCheck        = "M5 13l4 4L19 7"
	IconAlert        = "M12 9v2m0 4h.01m-6.938 4h13.856c1.54 0 2.502-1.667 1.732-2.5L13.732 4c-.77-.833-1.964-.833-2.732 0L4.082 16.5c-.77.833.192 2.5 1.732 2.5z"
	IconInfo         = "M13 16h-1v-4h-1m1-4h.01M21 12a9 9 0 11-18 0 9 9 0 0118 0z"
	IconWallet       = "M3 10h18M7 15h1m4 0h1m-7 4h12a3 3 0 003-3V8a3 3 0 00-3-3H6a3 3 0 00-3 3v8a3 3 0 003 3z"
	IconExternalLink = "M10 6H6a2 2 0 00-2 2v10a2 2 0 002 2h10a2 2 0 002-2v-4M14 4h6m0 0v6m0-6L10 14"
)

// NotificationView is a notification ready for rendering.
type NotificationView struct {
	Message    string                  `json:"message"`
	Kind       entity.NotificationKind `json:"kind"`
	Title      string                  `json:"title"`
	Icon       string                  `json:"icon"`
	AlertClass string                  `json:"alertClass"`
}

// CreatedTokenView is the result panel.
type CreatedTokenView struct {
	entity.CreatedToken
	ExplorerURL string `json:"explorerUrl"`
}

// StateView is the presentation model of a view. The JSON API, the websocket feed
// and the HTML page all render it.
type StateView struct {
	Session        entity.WalletSession `json:"session"`
	ShortAddress   string               `json:"shortAddress,omitempty"`
	Draft          entity.TokenDraft    `json:"draft"`
	Notification   *NotificationView    `json:"notification,omitempty"`
	CreatedToken   *CreatedTokenView    `json:"createdToken,omitempty"`
	IsCreating     bool                 `json:"isCreating"`
	SubmitDisabled bool                 `json:"submitDisabled"`
}

// PageModel holds everything the page template needs.
type PageModel struct {
	Title        string
	WalletName   string
	WalletMode   string
	InstallURL   string
	NetworkName  string
	Instructions []string
	Note         string
	State        StateView
}

// Presenter turns view snapshots into presentation models.
type Presenter struct {
	network entity.NetworkDefinition
}

// NewPresenter creates a Presenter linking created tokens to the given network's explorer.
func NewPresenter(network entity.NetworkDefinition) *Presenter {
	return &Presenter{network: network}
}

// Present builds the presentation model of state.
func (p *Presenter) Present(state entity.ViewState) StateView {
	out := StateView{
		Session:        state.Session,
		Draft:          state.Draft,
		IsCreating:     state.IsCreating,
		SubmitDisabled: state.SubmitDisabled(),
	}
	if state.Session.Connected {
		out.ShortAddress = utils.ShortAddress(state.Session.Address)
	}
	if n := state.Notification; n != nil {
		out.Notification = presentNotification(*n)
	}
	if t := state.CreatedToken; t != nil {
		out.CreatedToken = &CreatedTokenView{
			CreatedToken: *t,
			ExplorerURL:  p.network.AddressURL(t.Address),
		}
	}
	return out
}

func presentNotification(n entity.Notification) *NotificationView {
	kind := n.Kind.Normalize()
	view := &NotificationView{
		Message: n.Message,
		Kind:    kind,
		Title:   kind.Title(),
	}
	switch kind {
	case entity.NotificationSuccess:
		view.Icon = IconCheck
		view.AlertClass = "bg-green-500/20 border-green-400/30 text-green-100"
	case entity.NotificationError:
		view.Icon = IconAlert
		view.AlertClass = "bg-red-500/20 border-red-400/30 text-red-100"
	default:
		view.Icon = IconInfo
		view.AlertClass = "bg-blue-500/20 border-blue-400/30 text-blue-100"
	}
	return view
}

// instructions returns the static instruction lines for the configured wallet and network.
func instructions(walletName, networkName string) []string {
	return []string{
		"1. Install the " + walletName + " wallet browser extension",
		"2. Connect your wallet using the button above",
		"3. Fill in your token details (name, symbol, etc.)",
		"4. Click \"Create Token\" to deploy your new token on " + networkName,
	}
}
