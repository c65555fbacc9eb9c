package models

import (
	"github.com/jon4hz/funfacts/internal/database"
)

// AvatarFunc resolves the avatar URL of a user.
type AvatarFunc func(*database.User) string

// ToUser converts a database.User to its public representation.
func ToUser(u *database.User, avatar AvatarFunc) User {
	user := User{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if avatar != nil {
		user.AvatarURL = avatar(u)
	}
	return user
}

// ToUsers converts a slice of database.User.
func ToUsers(users []database.User, avatar AvatarFunc) []User {
	result := make([]User, len(users))
	for i := range users {
		result[i] = ToUser(&users[i], avatar)
	}
	return result
}
