package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"token_creator/internal/app/port"
	"token_creator/internal/domain/entity"
)

// Outcome labels reported to port.MetricsRecorder.
const (
	OutcomeSuccess       = "success"
	OutcomeMissingWallet = "missing_wallet"
	OutcomeRejected      = "rejected"
	OutcomeFailure       = "failure"
	OutcomeCancelled     = "cancelled"
)

// ViewOptions configures a TokenCreatorView.
type ViewOptions struct {
	WalletName                    string
	NotificationTTL               time.Duration
	CancelSupersededNotifications bool
}

// creation is one in-flight run of the creation workflow.
type creation struct {
	cancel  context.CancelFunc
	started time.Time
}

// TokenCreatorView implements port.TokenCreatorView. One instance exists per browser
// session; all of its state is guarded by mu.
type TokenCreatorView struct {
	mu       sync.Mutex
	session  entity.WalletSession
	draft    entity.TokenDraft
	created  *entity.CreatedToken
	inflight *creation
	closed   bool

	notifier *Notifier
	minter   port.TokenMinter
	clock    clock.Clock
	metrics  port.MetricsRecorder
	logger   *zap.Logger
	opts     ViewOptions

	// lifetime is cancelled by Close; creation contexts derive from it.
	lifetime context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// NewTokenCreatorView creates a view with an empty draft and no wallet connected.
func NewTokenCreatorView(
	minter port.TokenMinter,
	clk clock.Clock,
	metrics port.MetricsRecorder,
	logger *zap.Logger,
	opts ViewOptions,
) *TokenCreatorView {
	if opts.WalletName == "" {
		opts.WalletName = "Phantom"
	}
	if opts.NotificationTTL <= 0 {
		opts.NotificationTTL = 5 * time.Second
	}

	lifetime, cancel := context.WithCancel(context.Background())
	v := &TokenCreatorView{
		draft:    entity.NewTokenDraft(),
		minter:   minter,
		clock:    clk,
		metrics:  metrics,
		logger:   logger.Named("TokenCreatorView"),
		opts:     opts,
		lifetime: lifetime,
		cancel:   cancel,
		subs:     make(map[int]chan struct{}),
	}
	v.notifier = NewNotifier(clk, opts.NotificationTTL, opts.CancelSupersededNotifications, v.broadcast, func(kind entity.NotificationKind) {
		v.metrics.Notification(string(kind))
	})
	return v
}

// Connect implements port.TokenCreatorView.
func (v *TokenCreatorView) Connect(ctx context.Context, capability port.WalletCapability) error {
	if v.isClosed() {
		return entity.ErrViewClosed
	}

	if capability == nil {
		v.metrics.WalletConnect(OutcomeMissingWallet)
		v.notifier.Set(fmt.Sprintf("%s wallet not found. Please install %s wallet extension.", v.opts.WalletName, v.opts.WalletName), entity.NotificationError)
		return entity.ErrMissingWalletCapability
	}

	resp, err := capability.Connect(ctx)
	if err == nil && (resp.PublicKey == nil || resp.PublicKey.String() == "") {
		err = fmt.Errorf("%w: wallet returned an empty public key", entity.ErrConnectionRejected)
	}
	if err != nil {
		v.logger.Debug("Wallet connect failed", zap.Error(err))
		v.metrics.WalletConnect(OutcomeRejected)
		v.notifier.Set("Failed to connect wallet", entity.NotificationError)
		if errors.Is(err, entity.ErrConnectionRejected) {
			return err
		}
		return fmt.Errorf("%w: %v", entity.ErrConnectionRejected, err)
	}

	address := resp.PublicKey.String()
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return entity.ErrViewClosed
	}
	v.session = entity.WalletSession{Connected: true, Address: address}
	v.mu.Unlock()

	v.logger.Info("Wallet connected", zap.String("address", address))
	v.metrics.WalletConnect(OutcomeSuccess)
	v.notifier.Set("Wallet connected successfully!", entity.NotificationSuccess)
	return nil
}

// Disconnect implements port.TokenCreatorView. An in-flight creation is cancelled and
// its result discarded.
func (v *TokenCreatorView) Disconnect() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.session = entity.WalletSession{}
	v.created = nil
	if v.inflight != nil {
		v.inflight.cancel()
		v.inflight = nil
	}
	v.mu.Unlock()

	v.logger.Info("Wallet disconnected")
	v.notifier.Set("Wallet disconnected", entity.NotificationInfo)
}

// UpdateDraft implements port.TokenCreatorView.
func (v *TokenCreatorView) UpdateDraft(update entity.DraftUpdate) entity.TokenDraft {
	v.mu.Lock()
	v.draft = v.draft.Apply(update)
	draft := v.draft
	v.mu.Unlock()

	v.broadcast()
	return draft
}

// CreateToken implements port.TokenCreatorView. Preconditions are checked synchronously;
// the simulated round-trip runs in the background and CreateToken returns as soon as the
// view is busy.
func (v *TokenCreatorView) CreateToken() error {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return entity.ErrViewClosed
	}
	if !v.session.Connected {
		v.mu.Unlock()
		v.notifier.Set("Please connect your wallet first", entity.NotificationError)
		return entity.ErrWalletNotConnected
	}
	if err := v.draft.Validate(); err != nil {
		v.mu.Unlock()
		v.notifier.Set("Please fill in token name and symbol", entity.NotificationError)
		return err
	}
	if v.inflight != nil {
		v.mu.Unlock()
		v.notifier.Set("Token creation already in progress", entity.NotificationError)
		return entity.ErrCreationInProgress
	}

	ctx, cancel := context.WithCancel(v.lifetime)
	run := &creation{cancel: cancel, started: v.clock.Now()}
	v.inflight = run
	draft := v.draft
	v.wg.Add(1)
	v.mu.Unlock()

	v.broadcast()
	go v.runCreation(ctx, run, draft)
	return nil
}

func (v *TokenCreatorView) runCreation(ctx context.Context, run *creation, draft entity.TokenDraft) {
	defer v.wg.Done()
	defer run.cancel()

	token, err := v.minter.Mint(ctx, draft)
	elapsed := v.clock.Since(run.started)

	v.mu.Lock()
	// The busy flag belongs to this run only if nobody cancelled or replaced it.
	if v.inflight == run {
		v.inflight = nil
	}
	discarded := ctx.Err() != nil
	if err == nil && !discarded {
		v.created = &token
	}
	v.mu.Unlock()

	switch {
	case discarded:
		v.logger.Debug("Token creation discarded", zap.String("name", draft.Name), zap.NamedError("cause", ctx.Err()))
		v.metrics.TokenCreation(OutcomeCancelled, elapsed)
		v.broadcast()
	case err != nil:
		v.logger.Error("Error creating token", zap.String("name", draft.Name), zap.Error(err))
		v.metrics.TokenCreation(OutcomeFailure, elapsed)
		v.notifier.Set(fmt.Sprintf("Error creating token: %v", err), entity.NotificationError)
	default:
		v.metrics.TokenCreation(OutcomeSuccess, elapsed)
		v.notifier.Set(fmt.Sprintf("Token \"%s\" created successfully!", draft.Name), entity.NotificationSuccess)
	}
}

// State implements port.TokenCreatorView.
func (v *TokenCreatorView) State() entity.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()

	state := entity.ViewState{
		Session:      v.session,
		Draft:        v.draft,
		Notification: v.notifier.Current(),
		IsCreating:   v.inflight != nil,
	}
	if v.created != nil {
		cp := *v.created
		state.CreatedToken = &cp
	}
	return state
}

// Subscribe implements port.TokenCreatorView. Signals coalesce: a slow reader sees at
// least one signal after the latest change.
func (v *TokenCreatorView) Subscribe() (<-chan struct{}, func()) {
	v.subMu.Lock()
	defer v.subMu.Unlock()

	ch := make(chan struct{}, 1)
	if v.subs == nil {
		close(ch)
		return ch, func() {}
	}
	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.subMu.Lock()
			defer v.subMu.Unlock()
			if c, ok := v.subs[id]; ok {
				delete(v.subs, id)
				close(c)
			}
		})
	}
}

func (v *TokenCreatorView) broadcast() {
	v.subMu.Lock()
	defer v.subMu.Unlock()

	for _, ch := range v.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Close implements port.TokenCreatorView. It waits for an in-flight creation to unwind.
func (v *TokenCreatorView) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.inflight = nil
	v.mu.Unlock()

	v.cancel()
	v.notifier.Stop()
	v.wg.Wait()

	v.subMu.Lock()
	for id, ch := range v.subs {
		close(ch)
		delete(v.subs, id)
	}
	v.subs = nil
	v.subMu.Unlock()
}

func (v *TokenCreatorView) isClosed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}
