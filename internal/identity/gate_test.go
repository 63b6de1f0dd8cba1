package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func newTestGate(t *testing.T) *Gate {
	// Subscription and session plumbing don't touch the database.
	return NewGate(nil, "test-secret", time.Hour, zaptest.NewLogger(t))
}

func TestSubscribeDeliversCurrentStateImmediately(t *testing.T) {
	gate := newTestGate(t)

	var notified []*UserIdentity
	unsubscribe := gate.Subscribe(func(u *UserIdentity) {
		notified = append(notified, u)
	})
	defer unsubscribe()

	// At least one notification right after subscribing, carrying the
	// signed-out state.
	assert.Len(t, notified, 1)
	assert.Nil(t, notified[0])
}

func TestSubscribersSeeSignInAndSignOut(t *testing.T) {
	gate := newTestGate(t)

	var notified []*UserIdentity
	unsubscribe := gate.Subscribe(func(u *UserIdentity) {
		notified = append(notified, u)
	})
	defer unsubscribe()

	user := &UserIdentity{UID: "u-1", Email: "u@example.com"}
	gate.setCurrent(user)
	gate.Logout()

	assert.Equal(t, []*UserIdentity{nil, user, nil}, notified)
	assert.Nil(t, gate.CurrentUser())
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	gate := newTestGate(t)

	count := 0
	unsubscribe := gate.Subscribe(func(*UserIdentity) { count++ })
	unsubscribe()

	gate.setCurrent(&UserIdentity{UID: "u-1"})
	assert.Equal(t, 1, count, "only the initial delivery")
}

func TestLoginThrottling(t *testing.T) {
	gate := newTestGate(t)

	for i := 0; i < maxLoginAttempts; i++ {
		assert.False(t, gate.throttled("a@example.com"))
		gate.recordFailure("a@example.com")
	}
	assert.True(t, gate.throttled("a@example.com"))
	assert.False(t, gate.throttled("b@example.com"), "throttling is per email")

	gate.clearFailures("a@example.com")
	assert.False(t, gate.throttled("a@example.com"))
}
