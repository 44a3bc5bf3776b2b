package restapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"token_creator/internal/app/port"
	"token_creator/internal/domain/entity"
	"token_creator/internal/infrastructure/configloader"
)

// TokenCreatorHandler serves the page, the form posts and the JSON API of a session's view.
type TokenCreatorHandler struct {
	wallets   port.WalletCapabilityProvider
	presenter *Presenter
	cfg       *configloader.Config
	logger    *zap.Logger
	upgrader  websocket.Upgrader
}

// NewTokenCreatorHandler creates a new TokenCreatorHandler.
func NewTokenCreatorHandler(wallets port.WalletCapabilityProvider, cfg *configloader.Config, logger *zap.Logger) *TokenCreatorHandler {
	return &TokenCreatorHandler{
		wallets:   wallets,
		presenter: NewPresenter(cfg.Network),
		cfg:       cfg,
		logger:    logger.Named("TokenCreatorHandler"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin(cfg.CORS.AllowOrigins),
		},
	}
}

// draftForm is the form/JSON body of a draft update. Absent fields stay untouched.
type draftForm struct {
	Name     *string `json:"name" form:"name"`
	Symbol   *string `json:"symbol" form:"symbol"`
	Decimals *string `json:"decimals" form:"decimals"`
	Supply   *string `json:"supply" form:"supply"`
}

func (f draftForm) update() entity.DraftUpdate {
	return entity.DraftUpdate{Name: f.Name, Symbol: f.Symbol, Decimals: f.Decimals, Supply: f.Supply}
}

// --- HTML page ---

// PageHandler renders the token creator page.
func (h *TokenCreatorHandler) PageHandler(c *gin.Context) {
	view := viewFrom(c)
	c.HTML(http.StatusOK, "index.html", PageModel{
		Title:        h.cfg.UI.Title,
		WalletName:   h.cfg.Wallet.Name,
		WalletMode:   h.cfg.Wallet.Mode,
		InstallURL:   h.cfg.Wallet.InstallURL,
		NetworkName:  h.cfg.Network.Name,
		Instructions: instructions(h.cfg.Wallet.Name, h.cfg.Network.Name),
		Note:         "Note: This demo creates tokens on Devnet for testing purposes.",
		State:        h.presenter.Present(view.State()),
	})
}

// ConnectFormHandler handles the connect form post.
func (h *TokenCreatorHandler) ConnectFormHandler(c *gin.Context) {
	var req entity.ConnectRequest
	// A bare post means the page could not see an injected wallet.
	_ = c.ShouldBind(&req)
	h.connect(c, req)
	c.Redirect(http.StatusSeeOther, "/")
}

// DisconnectFormHandler handles the disconnect form post.
func (h *TokenCreatorHandler) DisconnectFormHandler(c *gin.Context) {
	viewFrom(c).Disconnect()
	c.Redirect(http.StatusSeeOther, "/")
}

// DraftFormHandler handles the draft form post.
func (h *TokenCreatorHandler) DraftFormHandler(c *gin.Context) {
	var form draftForm
	if err := c.ShouldBind(&form); err != nil {
		h.logger.Debug("Ignoring malformed draft form", zap.Error(err))
	}
	viewFrom(c).UpdateDraft(form.update())
	c.Redirect(http.StatusSeeOther, "/")
}

// CreateFormHandler handles the create form post. The form carries the draft so a
// page without scripts can submit in one step.
func (h *TokenCreatorHandler) CreateFormHandler(c *gin.Context) {
	view := viewFrom(c)
	var form draftForm
	if err := c.ShouldBind(&form); err == nil {
		view.UpdateDraft(form.update())
	}
	h.createToken(view)
	c.Redirect(http.StatusSeeOther, "/")
}

// --- JSON API ---

// GetStateHandler returns the presentation model of the session.
func (h *TokenCreatorHandler) GetStateHandler(c *gin.Context) {
	h.respondState(c, viewFrom(c))
}

// ConnectWalletHandler handles POST /api/v1/wallet/connect.
func (h *TokenCreatorHandler) ConnectWalletHandler(c *gin.Context) {
	var req entity.ConnectRequest
	if !h.decodeBody(c, &req) {
		return
	}
	h.connect(c, req)
	h.respondState(c, viewFrom(c))
}

// DisconnectWalletHandler handles POST /api/v1/wallet/disconnect.
func (h *TokenCreatorHandler) DisconnectWalletHandler(c *gin.Context) {
	view := viewFrom(c)
	view.Disconnect()
	h.respondState(c, view)
}

// UpdateDraftHandler handles PATCH /api/v1/token/draft.
func (h *TokenCreatorHandler) UpdateDraftHandler(c *gin.Context) {
	var form draftForm
	if !h.decodeBody(c, &form) {
		return
	}
	view := viewFrom(c)
	view.UpdateDraft(form.update())
	h.respondState(c, view)
}

// CreateTokenHandler handles POST /api/v1/token/create. Precondition failures are
// part of the returned state, not HTTP errors.
func (h *TokenCreatorHandler) CreateTokenHandler(c *gin.Context) {
	view := viewFrom(c)
	if errors.Is(h.createToken(view), entity.ErrViewClosed) {
		abortWithError(c, ErrorCodeSessionClosed, "Session closed", "reload the page to start a new session")
		return
	}
	h.respondState(c, view)
}

func (h *TokenCreatorHandler) connect(c *gin.Context, req entity.ConnectRequest) {
	sessionID := sessionIDFrom(c)
	capability := h.wallets.Resolve(sessionID, req)
	if err := viewFrom(c).Connect(c.Request.Context(), capability); err != nil {
		h.logger.Info("Wallet connect failed", zap.String("session", sessionID), zap.Error(err))
	}
}

func (h *TokenCreatorHandler) createToken(view port.TokenCreatorView) error {
	err := view.CreateToken()
	if err != nil {
		h.logger.Debug("Token creation not started", zap.Error(err))
	}
	return err
}

// decodeBody decodes an optional JSON body. An empty body leaves dst untouched.
func (h *TokenCreatorHandler) decodeBody(c *gin.Context, dst any) bool {
	err := json.NewDecoder(c.Request.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	abortWithError(c, ErrorCodeMalformedJSON, "Malformed JSON body", err.Error())
	return false
}

func (h *TokenCreatorHandler) respondState(c *gin.Context, view port.TokenCreatorView) {
	writeJSON(c, http.StatusOK, h.presenter.Present(view.State()))
}
