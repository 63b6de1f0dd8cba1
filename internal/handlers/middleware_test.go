package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/career-compass/internal/identity"
	"github.com/justsurfingit/career-compass/internal/models"
	"github.com/justsurfingit/career-compass/internal/tracker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// stubStore satisfies the controller's record store with an empty collection.
type stubStore struct{}

func (stubStore) Create(_ context.Context, _ string, job models.Job) (models.Job, error) {
	return job, nil
}
func (stubStore) Update(_ context.Context, _ string, patch models.Job) (models.Job, error) {
	return patch, nil
}
func (stubStore) Delete(context.Context, string) error { return nil }
func (stubStore) ListByUser(context.Context, string) ([]models.Job, error) {
	return nil, nil
}

// withUser plants the identity the way RequireAuth does after verifying a
// token.
func withUser(user *identity.UserIdentity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(userContextKey, user)
		c.Next()
	}
}

func TestRequireSessionRejectsForeignTokenHolders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := tracker.NewController(stubStore{}, zaptest.NewLogger(t))
	require.NoError(t, controller.LoadJobs(context.Background(), "owner-uid"))

	newRequest := func(user *identity.UserIdentity) *httptest.ResponseRecorder {
		r := gin.New()
		r.GET("/jobs", withUser(user), RequireSession(controller), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true})
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/jobs", nil)
		r.ServeHTTP(w, req)
		return w
	}

	// The session owner gets through.
	assert.Equal(t, http.StatusOK, newRequest(&identity.UserIdentity{UID: "owner-uid"}).Code)

	// A valid token for a different account must not reach the owner's
	// collection.
	assert.Equal(t, http.StatusForbidden, newRequest(&identity.UserIdentity{UID: "other-uid"}).Code)

	// No resolved user at all is rejected too.
	assert.Equal(t, http.StatusForbidden, newRequest(nil).Code)
}

func TestRequireSessionRejectsWhileSignedOut(t *testing.T) {
	gin.SetMode(gin.TestMode)

	controller := tracker.NewController(stubStore{}, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/jobs", withUser(&identity.UserIdentity{UID: "owner-uid"}), RequireSession(controller), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/jobs", nil))

	assert.Equal(t, http.StatusForbidden, w.Code, "no session loaded means nothing is reachable")
}
