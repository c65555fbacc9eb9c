package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jon4hz/funfacts/internal/api"
	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/database/mock"
	"github.com/jon4hz/funfacts/internal/engine"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Listen:        "127.0.0.1:0",
		ServerURL:     "http://localhost",
		SessionKey:    "client-test-session-key",
		SessionMaxAge: 3600,
		Auth:          &config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Cache:         &config.CacheConfig{Type: config.CacheTypeMemory, TTL: 60},
		Maintenance:   &config.MaintenanceConfig{Enabled: false},
	}
	e, err := engine.New(cfg, mock.NewMockDB())
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })

	server, err := api.New(cfg, e)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}

func TestClient_UsersAndLogin(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	msg, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Fun Facts Generator API is running!", msg)

	user, err := c.Register(ctx, engine.NewUser{Username: "alice", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = c.Register(ctx, engine.NewUser{Username: "bob"})
	assert.True(t, IsStatus(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "Username, Email, and Password are required!")

	_, err = c.Me(ctx)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	id, err := c.Login(ctx, "a@x.com", "p")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", me.Username)

	_, err = c.Login(ctx, "a@x.com", "wrong")
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
	_, err = c.Login(ctx, "nobody@x.com", "p")
	assert.True(t, IsStatus(err, http.StatusNotFound))

	require.NoError(t, c.Logout(ctx))
	_, err = c.Me(ctx)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))

	updated, err := c.UpdateUser(ctx, user.ID, engine.UserUpdate{Email: lo.ToPtr("alice@x.com")})
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", updated.Email)

	users, err := c.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, c.DeleteUser(ctx, user.ID))
	assert.True(t, IsStatus(c.DeleteUser(ctx, user.ID), http.StatusBadRequest))
}

func TestClient_FactsAndFavorites(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.RandomFact(ctx, "")
	assert.True(t, IsStatus(err, http.StatusNotFound))

	user, err := c.Register(ctx, engine.NewUser{Username: "alice", Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	fact, err := c.AddFact(ctx, engine.NewFact{Content: "Octopi have three hearts", Category: "biology", UserID: &user.ID})
	require.NoError(t, err)

	random, err := c.RandomFact(ctx, "biology")
	require.NoError(t, err)
	assert.Equal(t, fact.ID, random.ID)

	fact, err = c.UpdateFact(ctx, fact.ID, engine.FactUpdate{Content: lo.ToPtr("An octopus has three hearts")})
	require.NoError(t, err)
	assert.Equal(t, "An octopus has three hearts", fact.Content)

	facts, err := c.ListFacts(ctx)
	require.NoError(t, err)
	assert.Len(t, facts, 1)

	counts, err := c.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.EqualValues(t, 1, counts[0].Count)

	result, msg, err := c.AddFavorite(ctx, user.ID, fact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Added to favorites!", msg)
	assert.Equal(t, "added", result.Outcome)

	_, msg, err = c.AddFavorite(ctx, user.ID, fact.ID)
	require.NoError(t, err)
	assert.Equal(t, "Already in favorites", msg)

	favorites, err := c.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "An octopus has three hearts", favorites[0].FactText)

	require.NoError(t, c.RemoveFavorite(ctx, result.Favorite.ID))
	favorites, err = c.ListFavorites(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, favorites)

	stats, err := c.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Facts)

	require.NoError(t, c.DeleteFact(ctx, fact.ID))
	_, err = c.RandomFact(ctx, "biology")
	assert.True(t, IsStatus(err, http.StatusNotFound))
}

func TestClient_Jobs(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	jobs, err := c.ListJobs(ctx)
	require.NoError(t, err)
	assert.Empty(t, jobs, "maintenance is disabled")

	_, err = c.RunJob(ctx, engine.PruneFavoritesJobID)
	require.Error(t, err)
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.Equal(t, "Job not found (status 404)", err.Error())
}

func TestAPIError(t *testing.T) {
	err := &APIError{StatusCode: http.StatusNotFound, Message: "No facts found"}
	assert.Equal(t, "No facts found (status 404)", err.Error())
	assert.True(t, IsStatus(err, http.StatusNotFound))
	assert.False(t, IsStatus(err, http.StatusBadRequest))
	assert.False(t, IsStatus(nil, http.StatusNotFound))
}
