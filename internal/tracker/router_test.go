package tracker

import (
	"context"
	"testing"

	"github.com/justsurfingit/career-compass/internal/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeAuthStream lets tests emit auth notifications by hand.
type fakeAuthStream struct {
	cb         func(*identity.UserIdentity)
	subscribed bool
}

func (f *fakeAuthStream) Subscribe(cb func(*identity.UserIdentity)) func() {
	f.cb = cb
	f.subscribed = true
	return func() {
		f.cb = nil
		f.subscribed = false
	}
}

func (f *fakeAuthStream) emit(user *identity.UserIdentity) {
	if f.cb != nil {
		f.cb(user)
	}
}

func newTestRouter(t *testing.T) (*Router, *fakeAuthStream, *fakeStore) {
	store := &fakeStore{}
	controller := NewController(store, zaptest.NewLogger(t))
	router := NewRouter(controller, zaptest.NewLogger(t))
	stream := &fakeAuthStream{}
	router.Start(context.Background(), stream)
	return router, stream, store
}

func TestRouterStaysLoadingUntilFirstNotification(t *testing.T) {
	router, stream, _ := newTestRouter(t)
	assert.True(t, stream.subscribed)
	assert.Equal(t, ScreenLoading, router.Screen())
}

func TestRouterResolvesUnauthenticated(t *testing.T) {
	router, stream, store := newTestRouter(t)

	stream.emit(nil)
	assert.Equal(t, ScreenLogin, router.Screen())
	assert.Nil(t, router.User())
	assert.Zero(t, store.calls, "no job load while signed out")

	router.SwitchToRegister()
	assert.Equal(t, ScreenRegister, router.Screen())
	router.SwitchToLogin()
	assert.Equal(t, ScreenLogin, router.Screen())
}

func TestRouterLoadsJobsOncePerSignIn(t *testing.T) {
	router, stream, store := newTestRouter(t)
	user := &identity.UserIdentity{UID: "user-1", Email: "u@example.com"}

	stream.emit(user)
	assert.Equal(t, ScreenTracker, router.Screen())
	require.Equal(t, user, router.User())
	assert.Equal(t, 1, store.calls)

	// A repeated notification for the same signed-in state does not reload.
	stream.emit(user)
	assert.Equal(t, 1, store.calls)
}

func TestRouterSignOutResetsSession(t *testing.T) {
	router, stream, store := newTestRouter(t)
	stream.emit(&identity.UserIdentity{UID: "user-1"})
	require.Equal(t, ScreenTracker, router.Screen())

	stream.emit(nil)
	assert.Equal(t, ScreenLogin, router.Screen())
	assert.Nil(t, router.User())
	assert.Equal(t, 1, store.calls, "sign-out clears state without another load")

	// Sign-in again triggers exactly one more load.
	stream.emit(&identity.UserIdentity{UID: "user-1"})
	assert.Equal(t, 2, store.calls)
}

func TestRouterStopIgnoresLateNotifications(t *testing.T) {
	router, stream, _ := newTestRouter(t)
	stream.emit(nil)
	router.Stop()

	stream.emit(&identity.UserIdentity{UID: "user-1"})
	assert.Equal(t, ScreenLogin, router.Screen())
}
