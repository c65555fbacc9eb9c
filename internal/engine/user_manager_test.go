package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jon4hz/funfacts/internal/config"
	"github.com/jon4hz/funfacts/internal/database/mock"
	"github.com/jon4hz/funfacts/internal/gravatar"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (n *recordingNotifier) SendWelcome(userName, userEmail string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, userEmail)
	return n.err
}

type UserManagerTestSuite struct {
	suite.Suite
	db       *mock.MockDB
	notifier *recordingNotifier
	manager  *UserManager
	ctx      context.Context
}

func (s *UserManagerTestSuite) SetupTest() {
	s.db = mock.NewMockDB()
	s.notifier = &recordingNotifier{}
	avatars, err := gravatar.New(&config.GravatarConfig{Enabled: true})
	s.Require().NoError(err)
	s.manager = NewUserManager(s.db, UserManagerOptions{
		BcryptCost: bcrypt.MinCost,
		Notifier:   s.notifier,
		Avatars:    avatars,
	})
	s.ctx = context.Background()
}

func (s *UserManagerTestSuite) register(username, email, password string) uint {
	user, err := s.manager.Register(s.ctx, NewUser{Username: username, Email: email, Password: password})
	s.Require().NoError(err)
	return user.ID
}

func (s *UserManagerTestSuite) TestRegister() {
	user, err := s.manager.Register(s.ctx, NewUser{Username: "alice", Email: "a@x.com", Password: "pw"})
	s.Require().NoError(err)
	s.NotZero(user.ID)
	s.Equal("alice", user.Username)
	s.NotEqual("pw", user.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")))

	s.manager.Wait()
	s.Equal([]string{"a@x.com"}, s.notifier.sent)
}

func (s *UserManagerTestSuite) TestRegister_Validation() {
	tests := []struct {
		name    string
		input   NewUser
		message string
	}{
		{"missing username", NewUser{Email: "a@x.com", Password: "pw"}, "Username, Email, and Password are required!"},
		{"missing email", NewUser{Username: "alice", Password: "pw"}, "Username, Email, and Password are required!"},
		{"missing password", NewUser{Username: "alice", Email: "a@x.com"}, "Username, Email, and Password are required!"},
		{"malformed email", NewUser{Username: "alice", Email: "not-an-email", Password: "pw"}, "email: Invalid email format"},
		{"password too long", NewUser{Username: "alice", Email: "a@x.com", Password: strings.Repeat("x", 73)}, "password: Must be at most 72 bytes"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.manager.Register(s.ctx, tt.input)
			s.ErrorIs(err, ErrValidation)
			s.Equal(tt.message, Message(err))
		})
	}

	users, err := s.manager.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *UserManagerTestSuite) TestRegister_StoreFailure() {
	s.db.CreateUserError = errors.New("connection reset")

	_, err := s.manager.Register(s.ctx, NewUser{Username: "alice", Email: "a@x.com", Password: "pw"})
	s.ErrorIs(err, ErrStore)
	s.Equal("Internal server error", Message(err))

	s.manager.Wait()
	s.Empty(s.notifier.sent)
}

func (s *UserManagerTestSuite) TestRegister_MailFailureIgnored() {
	s.notifier.err = errors.New("smtp down")

	_, err := s.manager.Register(s.ctx, NewUser{Username: "alice", Email: "a@x.com", Password: "pw"})
	s.NoError(err)
	s.manager.Wait()
}

func (s *UserManagerTestSuite) TestLogin() {
	s.register("alice", "a@x.com", "p")

	user, err := s.manager.Login(s.ctx, "a@x.com", "p")
	s.Require().NoError(err)
	s.Equal("alice", user.Username)

	_, err = s.manager.Login(s.ctx, "a@x.com", "q")
	s.ErrorIs(err, ErrInvalidCredentials)
	s.Equal("Invalid password", Message(err))

	_, err = s.manager.Login(s.ctx, "b@x.com", "p")
	s.ErrorIs(err, ErrNotFound)
	s.Equal("User not found", Message(err))

	_, err = s.manager.Login(s.ctx, "", "p")
	s.ErrorIs(err, ErrValidation)
}

func (s *UserManagerTestSuite) TestLogin_FirstMatchingEmail() {
	s.register("first", "same@x.com", "one")
	s.register("second", "same@x.com", "two")

	user, err := s.manager.Login(s.ctx, "same@x.com", "one")
	s.Require().NoError(err)
	s.Equal("first", user.Username)

	_, err = s.manager.Login(s.ctx, "same@x.com", "two")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *UserManagerTestSuite) TestLogin_StoreFailure() {
	s.db.GetUserByEmailError = errors.New("timeout")

	_, err := s.manager.Login(s.ctx, "a@x.com", "p")
	s.ErrorIs(err, ErrStore)
}

func (s *UserManagerTestSuite) TestUpdate() {
	id := s.register("alice", "a@x.com", "pw")

	user, err := s.manager.Update(s.ctx, id, UserUpdate{Username: lo.ToPtr("alicia")})
	s.Require().NoError(err)
	s.Equal("alicia", user.Username)
	s.Equal("a@x.com", user.Email)

	_, err = s.manager.Update(s.ctx, id, UserUpdate{Password: lo.ToPtr("new")})
	s.Require().NoError(err)
	_, err = s.manager.Login(s.ctx, "a@x.com", "new")
	s.NoError(err)
	_, err = s.manager.Login(s.ctx, "a@x.com", "pw")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *UserManagerTestSuite) TestUpdate_Errors() {
	id := s.register("alice", "a@x.com", "pw")

	_, err := s.manager.Update(s.ctx, id, UserUpdate{})
	s.ErrorIs(err, ErrValidation)
	s.Equal("Nothing to update", Message(err))

	_, err = s.manager.Update(s.ctx, id, UserUpdate{Username: lo.ToPtr("")})
	s.ErrorIs(err, ErrValidation)
	s.Equal("username: Must not be empty", Message(err))

	_, err = s.manager.Update(s.ctx, id, UserUpdate{Email: lo.ToPtr("nope")})
	s.ErrorIs(err, ErrValidation)

	_, err = s.manager.Update(s.ctx, 999, UserUpdate{Username: lo.ToPtr("ghost")})
	s.ErrorIs(err, ErrNotFound)
	s.Equal("User not found", Message(err))
}

func (s *UserManagerTestSuite) TestGetAndDelete() {
	id := s.register("alice", "a@x.com", "pw")

	user, err := s.manager.Get(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("alice", user.Username)

	s.NoError(s.manager.Delete(s.ctx, id))
	s.ErrorIs(s.manager.Delete(s.ctx, id), ErrNotFound)

	_, err = s.manager.Get(s.ctx, id)
	s.ErrorIs(err, ErrNotFound)
}

func (s *UserManagerTestSuite) TestAvatarURL() {
	id := s.register("alice", "a@x.com", "pw")
	user, err := s.manager.Get(s.ctx, id)
	s.Require().NoError(err)

	s.True(strings.HasPrefix(s.manager.AvatarURL(user), "https://www.gravatar.com/avatar/"))
	s.Empty(s.manager.AvatarURL(nil))

	plain := NewUserManager(s.db, UserManagerOptions{BcryptCost: bcrypt.MinCost})
	s.Empty(plain.AvatarURL(user))
}

func TestUserManagerTestSuite(t *testing.T) {
	suite.Run(t, new(UserManagerTestSuite))
}
