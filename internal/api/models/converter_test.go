package models

import (
	"encoding/json"
	"testing"

	"github.com/jon4hz/funfacts/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUser(t *testing.T) {
	u := &database.User{ID: 3, Username: "alice", Email: "a@x.com", PasswordHash: "secret-hash"}

	user := ToUser(u, func(u *database.User) string { return "https://avatar/" + u.Username })
	assert.Equal(t, uint(3), user.ID)
	assert.Equal(t, "https://avatar/alice", user.AvatarURL)

	data, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret-hash")

	plain := ToUser(u, nil)
	assert.Empty(t, plain.AvatarURL)
}

func TestToUsers(t *testing.T) {
	users := ToUsers([]database.User{{ID: 1}, {ID: 2}}, nil)
	require.Len(t, users, 2)
	assert.Equal(t, uint(2), users[1].ID)

	assert.NotNil(t, ToUsers(nil, nil))
}

func TestEnvelope_OmitsEmptyData(t *testing.T) {
	data, err := json.Marshal(Envelope{Success: false, Message: "Fact not found"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Success":false,"Message":"Fact not found"}`, string(data))
}
