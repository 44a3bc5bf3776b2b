package restapi

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"token_creator/internal/app/port"
	"token_creator/internal/app/provider"
	"token_creator/internal/app/service"
	"token_creator/internal/domain/entity"
	"token_creator/internal/infrastructure/configloader"
	"token_creator/internal/infrastructure/metrics"
	"token_creator/internal/infrastructure/wallet"
	"token_creator/internal/pkg/logger"
	"token_creator/internal/pkg/utils"
)

var testLogger = logger.NewSlogAdapterFor(slog.New(slog.NewTextHandler(io.Discard, nil)))

type testServer struct {
	router http.Handler
	clock  *clock.Mock
	cfg    *configloader.Config
}

func newTestServer(t *testing.T, mode string, mutate func(cfg *configloader.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg, err := configloader.Parse([]byte("wallet:\n  mode: " + mode + "\n"))
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	mock := clock.NewMock()
	reg := prometheus.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(reg)
	minter := provider.NewSimulatedMinter(mock, cfg.SimulatedLatency(), utils.NewMockAddressGenerator(nil).Next, testLogger)

	sessions := service.NewSessionRegistry(cfg.SessionTTL(), 0, func(string) port.TokenCreatorView {
		return service.NewTokenCreatorView(minter, mock, recorder, zap.NewNop(), service.ViewOptions{
			WalletName:                    cfg.Wallet.Name,
			NotificationTTL:               cfg.NotificationTTL(),
			CancelSupersededNotifications: cfg.CancelSupersededNotifications(),
		})
	}, recorder, testLogger)
	t.Cleanup(sessions.Close)

	router, err := SetupRouter(RouterDeps{
		Config:   cfg,
		Sessions: sessions,
		Wallets:  provider.NewWalletProvider(cfg.Wallet.Mode, testLogger),
		Metrics:  recorder,
		Gatherer: reg,
		Logger:   zap.NewNop(),
	})
	require.NoError(t, err)

	return &testServer{router: router, clock: mock, cfg: cfg}
}

// browser keeps the session cookie between requests.
type browser struct {
	t      *testing.T
	srv    *testServer
	cookie *http.Cookie
}

func (s *testServer) browser(t *testing.T) *browser {
	return &browser{t: t, srv: s}
}

func (b *browser) do(method, path, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.srv.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.Name == b.srv.cfg.Session.CookieName {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) api(method, path, body string) StateView {
	b.t.Helper()
	w := b.do(method, path, "application/json", body)
	require.Equal(b.t, http.StatusOK, w.Code, w.Body.String())

	var state StateView
	require.NoError(b.t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func (b *browser) state() StateView {
	return b.api(http.MethodGet, "/api/v1/state", "")
}

func TestAPI_CreateTokenScenario(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeDevnet, nil)
	b := srv.browser(t)

	state := b.api(http.MethodPatch, "/api/v1/token/draft", `{"name":"My Awesome Token","symbol":"mat"}`)
	assert.Equal(t, "My Awesome Token", state.Draft.Name)
	assert.Equal(t, "MAT", state.Draft.Symbol)
	assert.Equal(t, "9", state.Draft.Decimals)
	assert.Equal(t, "1000", state.Draft.Supply)

	state = b.api(http.MethodPost, "/api/v1/token/create", "")
	require.NotNil(t, state.Notification)
	assert.Equal(t, "Please connect your wallet first", state.Notification.Message)
	assert.Equal(t, "Error!", state.Notification.Title)
	assert.False(t, state.IsCreating)

	state = b.api(http.MethodPost, "/api/v1/wallet/connect", "")
	require.True(t, state.Session.Connected)
	_, err := wallet.ParsePublicKey(state.Session.Address)
	require.NoError(t, err)
	assert.Equal(t, utils.ShortAddress(state.Session.Address), state.ShortAddress)
	assert.Equal(t, "Wallet connected successfully!", state.Notification.Message)
	assert.Equal(t, IconCheck, state.Notification.Icon)

	state = b.api(http.MethodPost, "/api/v1/token/create", "")
	assert.True(t, state.IsCreating)
	assert.True(t, state.SubmitDisabled)

	require.Eventually(t, func() bool {
		if b.state().CreatedToken != nil {
			return true
		}
		srv.clock.Add(500 * time.Millisecond)
		return false
	}, 2*time.Second, 10*time.Millisecond)

	state = b.state()
	require.NotNil(t, state.CreatedToken)
	address := state.CreatedToken.Address
	assert.Len(t, address, utils.MockAddressLength)
	assert.Equal(t, "https://explorer.solana.com/address/"+address+"?cluster=devnet", state.CreatedToken.ExplorerURL)
	assert.False(t, state.IsCreating)

	page := b.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, page.Code)
	body := page.Body.String()
	assert.Contains(t, body, "Token Created Successfully!")
	assert.Contains(t, body, address)
	assert.Contains(t, body, `href="https://explorer.solana.com/address/`+address+`?cluster=devnet" target="_blank" rel="noopener noreferrer"`)
	assert.Contains(t, body, "Copy Address")

	state = b.api(http.MethodPost, "/api/v1/wallet/disconnect", "")
	assert.False(t, state.Session.Connected)
	assert.Nil(t, state.CreatedToken)
	assert.Equal(t, "Wallet disconnected", state.Notification.Message)
	assert.Equal(t, "Info", state.Notification.Title)
}

func TestAPI_ValidationFailure(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeDevnet, nil)
	b := srv.browser(t)

	b.api(http.MethodPost, "/api/v1/wallet/connect", "")
	state := b.api(http.MethodPatch, "/api/v1/token/draft", `{"name":"   ","symbol":"MAT"}`)
	assert.Equal(t, "   ", state.Draft.Name)

	state = b.api(http.MethodPost, "/api/v1/token/create", "")
	assert.False(t, state.IsCreating)
	require.NotNil(t, state.Notification)
	assert.Equal(t, "Please fill in token name and symbol", state.Notification.Message)
}

func TestAPI_MalformedJSON(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeDevnet, nil)
	b := srv.browser(t)

	w := b.do(http.MethodPatch, "/api/v1/token/draft", "application/json", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeMalformedJSON, resp.Error.Code)
}

func TestAPI_BrowserWallet(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeBrowser, nil)

	t.Run("extension missing", func(t *testing.T) {
		b := srv.browser(t)
		state := b.api(http.MethodPost, "/api/v1/wallet/connect", `{"present":false}`)
		assert.False(t, state.Session.Connected)
		require.NotNil(t, state.Notification)
		assert.Equal(t, "Phantom wallet not found. Please install Phantom wallet extension.", state.Notification.Message)
		assert.Equal(t, IconAlert, state.Notification.Icon)
		assert.Equal(t, "bg-red-500/20 border-red-400/30 text-red-100", state.Notification.AlertClass)
	})

	t.Run("user rejected", func(t *testing.T) {
		b := srv.browser(t)
		state := b.api(http.MethodPost, "/api/v1/wallet/connect", `{"present":true,"rejected":true,"reason":"User rejected the request."}`)
		assert.False(t, state.Session.Connected)
		assert.Equal(t, "Failed to connect wallet", state.Notification.Message)
	})

	t.Run("malformed key", func(t *testing.T) {
		b := srv.browser(t)
		state := b.api(http.MethodPost, "/api/v1/wallet/connect", `{"present":true,"publicKey":"not-a-key"}`)
		assert.False(t, state.Session.Connected)
		assert.Equal(t, "Failed to connect wallet", state.Notification.Message)
	})

	t.Run("connected", func(t *testing.T) {
		key, err := wallet.NewDevnetWallet("browser-test").PublicKey()
		require.NoError(t, err)

		b := srv.browser(t)
		state := b.api(http.MethodPost, "/api/v1/wallet/connect", `{"present":true,"publicKey":"`+key.String()+`"}`)
		assert.True(t, state.Session.Connected)
		assert.Equal(t, key.String(), state.Session.Address)
	})
}

func TestForms_PostRedirectGet(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeBrowser, nil)
	b := srv.browser(t)

	form := url.Values{"present": {"false"}}
	w := b.do(http.MethodPost, "/wallet/connect", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	page := b.do(http.MethodGet, "/", "", "")
	assert.Contains(t, page.Body.String(), "Phantom wallet not found. Please install Phantom wallet extension.")

	form = url.Values{"name": {"Form Token"}, "symbol": {"ftk"}}
	w = b.do(http.MethodPost, "/token/draft", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	state := b.state()
	assert.Equal(t, "Form Token", state.Draft.Name)
	assert.Equal(t, "FTK", state.Draft.Symbol)

	w = b.do(http.MethodPost, "/token/create", "application/x-www-form-urlencoded", "")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "Please connect your wallet first", b.state().Notification.Message)
}

func TestPage_Initial(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeBrowser, nil)
	b := srv.browser(t)

	w := b.do(http.MethodGet, "/", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, b.cookie, "the page starts a session")

	body := w.Body.String()
	assert.Contains(t, body, "<title>Solana Token Creator</title>")
	assert.Contains(t, body, "Connect Wallet")
	assert.Contains(t, body, "1. Install the Phantom wallet browser extension")
	assert.Contains(t, body, "2. Connect your wallet using the button above")
	assert.Contains(t, body, "Note: This demo creates tokens on Devnet for testing purposes.")
	assert.Contains(t, body, `min="0" max="18"`)
	assert.Contains(t, body, `value="1000" min="1"`)
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeDevnet, func(cfg *configloader.Config) {
		cfg.RateLimit.Enabled = true
		cfg.RateLimit.RequestsPerSecond = 0.001
		cfg.RateLimit.Burst = 2
	})
	b := srv.browser(t)

	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/api/v1/state", "", "").Code)
	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/api/v1/state", "", "").Code)

	w := b.do(http.MethodGet, "/api/v1/state", "", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ErrorCodeRateLimitExceeded, resp.Error.Code)

	// Infrastructure endpoints are not limited.
	assert.Equal(t, http.StatusOK, b.do(http.MethodGet, "/health", "", "").Code)
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeDevnet, nil)
	b := srv.browser(t)
	b.state()

	w := b.do(http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","sessions":1}`, w.Body.String())

	w = b.do(http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "token_creator_active_sessions 1")
	assert.Contains(t, w.Body.String(), `token_creator_http_request_duration_seconds_count{method="GET",route="/api/v1/state",status="200"} 1`)
}

func TestStateStream(t *testing.T) {
	srv := newTestServer(t, configloader.WalletModeDevnet, nil)
	ts := httptest.NewServer(srv.router)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/state")
	require.NoError(t, err)
	resp.Body.Close()
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == srv.cfg.Session.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	header := http.Header{}
	header.Set("Cookie", cookie.Name+"="+cookie.Value)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", header)
	require.NoError(t, err)
	defer conn.Close()

	readState := func() StateView {
		t.Helper()
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var state StateView
		require.NoError(t, json.Unmarshal(data, &state))
		return state
	}

	initial := readState()
	assert.Equal(t, "", initial.Draft.Name)

	req, err := http.NewRequest(http.MethodPatch, ts.URL+"/api/v1/token/draft", strings.NewReader(`{"name":"Streamed"}`))
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	var got StateView
	for i := 0; i < 5 && got.Draft.Name != "Streamed"; i++ {
		got = readState()
	}
	assert.Equal(t, "Streamed", got.Draft.Name)
}

func TestPresenter(t *testing.T) {
	assert.Equal(t, "7xKX...gAsU", utils.ShortAddress("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"))

	info := presentNotification(entity.Notification{Message: "x", Kind: entity.NotificationKind("bogus")})
	assert.Equal(t, "Info", info.Title)
	assert.Equal(t, IconInfo, info.Icon)
	assert.Equal(t, "bg-blue-500/20 border-blue-400/30 text-blue-100", info.AlertClass)

	success := presentNotification(entity.Notification{Message: "x", Kind: entity.NotificationSuccess})
	assert.Equal(t, "Success!", success.Title)
	assert.Equal(t, "bg-green-500/20 border-green-400/30 text-green-100", success.AlertClass)
}
