package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/jon4hz/funfacts/internal/gravatar"
	"golang.org/x/crypto/bcrypt"
)

// WelcomeNotifier greets newly registered users.
type WelcomeNotifier interface {
	SendWelcome(userName, userEmail string) error
}

// NewUser is the input of a registration.
type NewUser struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserUpdate is a partial user update. A nil field is left untouched.
type UserUpdate struct {
	Username *string `json:"username" validate:"omitnil,min=1"`
	Email    *string `json:"email" validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=1"`
}

func (u UserUpdate) empty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil
}

// UserManagerOptions holds the optional collaborators of a UserManager.
type UserManagerOptions struct {
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Notifier receives a welcome mail request for every registration.
	Notifier WelcomeNotifier
	// Avatars resolves avatar URLs, nil disables them.
	Avatars *gravatar.Resolver
}

// UserManager handles registration, credentials and user records.
type UserManager struct {
	db         database.UserDB
	bcryptCost int
	notifier   WelcomeNotifier
	avatars    *gravatar.Resolver

	mails sync.WaitGroup
}

// NewUserManager creates a UserManager on top of the given store.
func NewUserManager(db database.UserDB, opts UserManagerOptions) *UserManager {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &UserManager{
		db:         db,
		bcryptCost: cost,
		notifier:   opts.Notifier,
		avatars:    opts.Avatars,
	}
}

// Register creates a new user with a hashed password.
func (m *UserManager) Register(ctx context.Context, input NewUser) (*database.User, error) {
	if err := validateInput(input, "Username, Email, and Password are required!"); err != nil {
		return nil, err
	}

	hash, err := m.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &database.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}
	if err := m.db.CreateUser(ctx, user); err != nil {
		return nil, storeError("Failed to add user", err)
	}
	log.Info("Registered user", "id", user.ID, "username", user.Username)

	m.sendWelcome(user.Username, user.Email)

	return user, nil
}

func (m *UserManager) List(ctx context.Context) ([]database.User, error) {
	users, err := m.db.GetUsers(ctx)
	if err != nil {
		return nil, storeError("Failed to list users", err)
	}
	return users, nil
}

func (m *UserManager) Get(ctx context.Context, id uint) (*database.User, error) {
	user, err := m.db.GetUserByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to get user")
	}
	return user, nil
}

// Update applies a partial update. A new password is hashed before it is stored.
func (m *UserManager) Update(ctx context.Context, id uint, input UserUpdate) (*database.User, error) {
	if input.empty() {
		return nil, validationError("Nothing to update", nil)
	}
	if err := validateInput(input, "Username, Email, and Password must not be empty"); err != nil {
		return nil, err
	}

	updates := database.UserUpdates{
		Username: input.Username,
		Email:    input.Email,
	}
	if input.Password != nil {
		hash, err := m.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		updates.PasswordHash = &hash
	}

	user, err := m.db.UpdateUser(ctx, id, updates)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to update user")
	}
	return user, nil
}

func (m *UserManager) Delete(ctx context.Context, id uint) error {
	if err := m.db.DeleteUser(ctx, id); err != nil {
		return lookupError(err, "User not found", "Failed to delete user")
	}
	log.Info("Deleted user", "id", id)
	return nil
}

// Login checks the credentials of the first user registered with the email.
// It fails with ErrNotFound for an unknown email and ErrInvalidCredentials for a wrong password.
func (m *UserManager) Login(ctx context.Context, email, password string) (*database.User, error) {
	if email == "" || password == "" {
		return nil, validationError("Email and Password are required!", nil)
	}

	user, err := m.db.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, "User not found", "Failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			log.Warn("Stored password hash is unusable", "user_id", user.ID, "error", err)
		}
		return nil, &Error{Kind: ErrInvalidCredentials, Message: "Invalid password"}
	}

	return user, nil
}

// AvatarURL returns the avatar of the user or an empty string.
func (m *UserManager) AvatarURL(user *database.User) string {
	if user == nil {
		return ""
	}
	return m.avatars.URL(user.Email)
}

// Wait blocks until all pending welcome mails are handled.
func (m *UserManager) Wait() {
	m.mails.Wait()
}

func (m *UserManager) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", validationError("password: Must be at most 72 bytes", err)
		}
		return "", storeError("Failed to hash password", err)
	}
	return string(hash), nil
}

func (m *UserManager) sendWelcome(userName, userEmail string) {
	if m.notifier == nil {
		return
	}
	m.mails.Add(1)
	go func() {
		defer m.mails.Done()
		if err := m.notifier.SendWelcome(userName, userEmail); err != nil {
			log.Error("Failed to send welcome mail", "user", userName, "error", err)
		}
	}()
}
