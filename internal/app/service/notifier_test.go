package service

import (
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"token_creator/internal/domain/entity"
)

const testTTL = 5 * time.Second

func eventuallyCleared(t *testing.T, n *Notifier) {
	t.Helper()
	require.Eventually(t, func() bool { return n.Current() == nil }, time.Second, 5*time.Millisecond)
}

func TestNotifier_ExpiresAfterTTL(t *testing.T) {
	mock := clock.NewMock()
	n := NewNotifier(mock, testTTL, true, nil, nil)

	n.Set("Wallet connected successfully!", entity.NotificationSuccess)
	got := n.Current()
	require.NotNil(t, got)
	assert.Equal(t, "Wallet connected successfully!", got.Message)
	assert.Equal(t, entity.NotificationSuccess, got.Kind)
	assert.Equal(t, mock.Now(), got.IssuedAt)

	mock.Add(testTTL - time.Millisecond)
	assert.NotNil(t, n.Current(), "notification must survive until the ttl elapses")

	mock.Add(time.Millisecond)
	eventuallyCleared(t, n)
}

func TestNotifier_UnknownKindIsInfo(t *testing.T) {
	n := NewNotifier(clock.NewMock(), testTTL, true, nil, nil)
	n.Set("hello", entity.NotificationKind("warning"))

	got := n.Current()
	require.NotNil(t, got)
	assert.Equal(t, entity.NotificationInfo, got.Kind)
}

func TestNotifier_SupersededTimerIsCancelled(t *testing.T) {
	mock := clock.NewMock()
	n := NewNotifier(mock, testTTL, true, nil, nil)

	n.Set("first", entity.NotificationInfo)
	mock.Add(time.Second)
	n.Set("second", entity.NotificationError)

	// T+5s: the first timer would have fired here.
	mock.Add(4 * time.Second)
	time.Sleep(20 * time.Millisecond)
	got := n.Current()
	require.NotNil(t, got)
	assert.Equal(t, "second", got.Message)

	// T+6s: the second notification's own ttl.
	mock.Add(time.Second)
	eventuallyCleared(t, n)
}

func TestNotifier_LegacyRaceClearsNewerNotification(t *testing.T) {
	mock := clock.NewMock()
	n := NewNotifier(mock, testTTL, false, nil, nil)

	n.Set("first", entity.NotificationInfo)
	mock.Add(time.Second)
	n.Set("second", entity.NotificationError)

	mock.Add(4 * time.Second)
	eventuallyCleared(t, n)
}

func TestNotifier_Callbacks(t *testing.T) {
	mock := clock.NewMock()

	var mu sync.Mutex
	changes := 0
	var kinds []entity.NotificationKind
	n := NewNotifier(mock, testTTL, true,
		func() {
			mu.Lock()
			changes++
			mu.Unlock()
		},
		func(kind entity.NotificationKind) {
			mu.Lock()
			kinds = append(kinds, kind)
			mu.Unlock()
		})

	n.Set("a", entity.NotificationSuccess)
	n.Set("b", entity.NotificationError)
	mock.Add(testTTL)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return changes == 3
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []entity.NotificationKind{entity.NotificationSuccess, entity.NotificationError}, kinds)
}

func TestNotifier_Stop(t *testing.T) {
	mock := clock.NewMock()
	n := NewNotifier(mock, testTTL, true, nil, nil)

	n.Set("a", entity.NotificationInfo)
	n.Stop()
	assert.Nil(t, n.Current())

	n.Set("b", entity.NotificationInfo)
	assert.Nil(t, n.Current(), "Set after Stop is ignored")

	mock.Add(testTTL)
	assert.Nil(t, n.Current())
}
