// Package identity wraps credential verification and session state behind the
// contract the tracker consumes: register/login/logout/reset plus a
// subscription stream that delivers the current user (or nil) to every
// subscriber on each change.
package identity

import (
	"context"
	"net/mail"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/justsurfingit/career-compass/internal/apperr"
	"github.com/justsurfingit/career-compass/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserIdentity is what the rest of the app sees of a logged-in user.
type UserIdentity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

const (
	minPasswordLen   = 6
	maxLoginAttempts = 5
	attemptWindow    = 15 * time.Minute
)

type Gate struct {
	db     *gorm.DB
	log    *zap.Logger
	secret []byte
	ttl    time.Duration

	mu          sync.Mutex
	current     *UserIdentity
	subscribers map[int]func(*UserIdentity)
	nextSubID   int
	attempts    map[string][]time.Time
}

func NewGate(db *gorm.DB, secret string, ttl time.Duration, log *zap.Logger) *Gate {
	return &Gate{
		db:          db,
		log:         log,
		secret:      []byte(secret),
		ttl:         ttl,
		subscribers: make(map[int]func(*UserIdentity)),
		attempts:    make(map[string][]time.Time),
	}
}

// Subscribe registers cb and immediately delivers the current auth state, so
// a subscriber always gets at least one notification. The returned function
// unsubscribes.
func (g *Gate) Subscribe(cb func(*UserIdentity)) func() {
	g.mu.Lock()
	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = cb
	current := g.current
	g.mu.Unlock()

	cb(current)

	return func() {
		g.mu.Lock()
		delete(g.subscribers, id)
		g.mu.Unlock()
	}
}

func (g *Gate) CurrentUser() *UserIdentity {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

func (g *Gate) setCurrent(user *UserIdentity) {
	g.mu.Lock()
	g.current = user
	subs := make([]func(*UserIdentity), 0, len(g.subscribers))
	for _, cb := range g.subscribers {
		subs = append(subs, cb)
	}
	g.mu.Unlock()

	for _, cb := range subs {
		cb(user)
	}
}

// Register creates an account, sets the display name and signs the new user
// in, matching the provider behavior the tracker was written against.
func (g *Gate) Register(ctx context.Context, email, password, displayName string) (*UserIdentity, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Auth(apperr.AuthInvalidEmail, "invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, apperr.Auth(apperr.AuthWeakPassword, "password too short")
	}

	var count int64
	if err := g.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Auth(apperr.AuthUnknown, "register: "+err.Error())
	}
	if count > 0 {
		return nil, apperr.Auth(apperr.AuthEmailInUse, "email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Auth(apperr.AuthUnknown, "hash password: "+err.Error())
	}

	user := models.User{
		UID:          uuid.NewString(),
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: string(hash),
	}
	if err := g.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, apperr.Auth(apperr.AuthUnknown, "create user: "+err.Error())
	}

	identity := &UserIdentity{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}
	g.setCurrent(identity)
	g.log.Info("user registered", zap.String("uid", user.UID))
	return identity, nil
}

// Login verifies credentials and signs the user in. Repeated failures within
// the attempt window are throttled per email.
func (g *Gate) Login(ctx context.Context, email, password string) (*UserIdentity, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, apperr.Auth(apperr.AuthInvalidEmail, "invalid email address")
	}
	if g.throttled(email) {
		return nil, apperr.Auth(apperr.AuthTooManyRequests, "too many login attempts")
	}

	var user models.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		g.recordFailure(email)
		return nil, apperr.Auth(apperr.AuthUserNotFound, "no account for "+email)
	}
	if err != nil {
		return nil, apperr.Auth(apperr.AuthUnknown, "login: "+err.Error())
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		g.recordFailure(email)
		return nil, apperr.Auth(apperr.AuthWrongPassword, "password mismatch")
	}

	g.clearFailures(email)
	identity := &UserIdentity{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}
	g.setCurrent(identity)
	g.log.Info("user logged in", zap.String("uid", user.UID))
	return identity, nil
}

// Logout signs the current user out and notifies subscribers with nil.
func (g *Gate) Logout() {
	g.setCurrent(nil)
}

// ResetPassword issues a reset token for the account. Delivery is out of
// scope here; the token is logged so an operator-side mailer can pick it up.
// To avoid leaking which emails exist, an unknown address is not an error.
func (g *Gate) ResetPassword(ctx context.Context, email string) error {
	var user models.User
	err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Auth(apperr.AuthUnknown, "reset password: "+err.Error())
	}

	token, err := g.signToken(user.UID, 30*time.Minute)
	if err != nil {
		return apperr.Auth(apperr.AuthUnknown, "reset token: "+err.Error())
	}
	g.log.Info("password reset requested",
		zap.String("uid", user.UID),
		zap.String("reset_token", token))
	return nil
}

// IssueToken mints a session token for the HTTP surface.
func (g *Gate) IssueToken(user *UserIdentity) (string, error) {
	return g.signToken(user.UID, g.ttl)
}

func (g *Gate) signToken(uid string, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   uid,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		Issuer:    "career-compass",
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// VerifyToken resolves a session token back to the user it was issued for.
func (g *Gate) VerifyToken(ctx context.Context, token string) (*UserIdentity, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Newf("unexpected signing method %v", t.Header["alg"])
		}
		return g.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperr.Auth(apperr.AuthUnknown, "invalid session token")
	}
	claims := parsed.Claims.(*jwt.RegisteredClaims)

	var user models.User
	if err := g.db.WithContext(ctx).Where("uid = ?", claims.Subject).First(&user).Error; err != nil {
		return nil, apperr.Auth(apperr.AuthUserNotFound, "no account for token subject")
	}
	return &UserIdentity{UID: user.UID, Email: user.Email, DisplayName: user.DisplayName}, nil
}

func (g *Gate) throttled(email string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	cutoff := time.Now().Add(-attemptWindow)
	recent := g.attempts[email][:0]
	for _, t := range g.attempts[email] {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	g.attempts[email] = recent
	return len(recent) >= maxLoginAttempts
}

func (g *Gate) recordFailure(email string) {
	g.mu.Lock()
	g.attempts[email] = append(g.attempts[email], time.Now())
	g.mu.Unlock()
}

func (g *Gate) clearFailures(email string) {
	g.mu.Lock()
	delete(g.attempts, email)
	g.mu.Unlock()
}
