package tracker

import (
	"context"
	"sync"

	"github.com/justsurfingit/career-compass/internal/identity"
	"go.uber.org/zap"
)

// Screen is what the router has resolved to render.
type Screen string

const (
	ScreenLoading  Screen = "loading"
	ScreenLogin    Screen = "login"
	ScreenRegister Screen = "register"
	ScreenTracker  Screen = "tracker"
)

// AuthStream is the slice of the identity gate the router consumes.
type AuthStream interface {
	Subscribe(func(*identity.UserIdentity)) func()
}

// Router gates which screen renders from the auth subscription: loading until
// the first notification, then login/register while signed out, the tracker
// while signed in. Entering the authenticated state triggers a job load
// exactly once per transition.
type Router struct {
	controller *Controller
	log        *zap.Logger

	mu            sync.Mutex
	screen        Screen
	user          *identity.UserIdentity
	authView      Screen // login or register while unauthenticated
	unsubscribe   func()
	authenticated bool
}

func NewRouter(controller *Controller, log *zap.Logger) *Router {
	return &Router{
		controller: controller,
		log:        log,
		screen:     ScreenLoading,
		authView:   ScreenLogin,
	}
}

// Start subscribes to the auth stream. The gate delivers the current state
// immediately, which resolves the initial loading screen.
func (r *Router) Start(ctx context.Context, stream AuthStream) {
	r.unsubscribe = stream.Subscribe(func(user *identity.UserIdentity) {
		r.onAuthChange(ctx, user)
	})
}

// Stop detaches from the auth stream; late notifications are ignored.
func (r *Router) Stop() {
	if r.unsubscribe != nil {
		r.unsubscribe()
		r.unsubscribe = nil
	}
}

func (r *Router) onAuthChange(ctx context.Context, user *identity.UserIdentity) {
	r.mu.Lock()
	r.user = user
	wasAuthenticated := r.authenticated
	r.authenticated = user != nil
	if user != nil {
		r.screen = ScreenTracker
	} else {
		r.screen = r.authView
	}
	r.mu.Unlock()

	switch {
	case user != nil && !wasAuthenticated:
		r.log.Info("auth state: signed in", zap.String("uid", user.UID))
		if err := r.controller.LoadJobs(ctx, user.UID); err != nil {
			r.log.Error("initial job load failed", zap.Error(err))
		}
	case user == nil && wasAuthenticated:
		r.log.Info("auth state: signed out")
		r.controller.Reset()
	}
}

// Screen reports the active screen.
func (r *Router) Screen() Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen
}

// User reports the identity the router last observed, or nil.
func (r *Router) User() *identity.UserIdentity {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

// SwitchToLogin and SwitchToRegister toggle the unauthenticated view.
func (r *Router) SwitchToLogin()    { r.setAuthView(ScreenLogin) }
func (r *Router) SwitchToRegister() { r.setAuthView(ScreenRegister) }

func (r *Router) setAuthView(view Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.authView = view
	if !r.authenticated && r.screen != ScreenLoading {
		r.screen = view
	}
}
