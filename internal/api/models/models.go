package models

import (
	"time"

	"github.com/jon4hz/funfacts/internal/cache"
	"github.com/jon4hz/funfacts/internal/database"
	"github.com/jon4hz/funfacts/internal/engine"
	"github.com/jon4hz/funfacts/internal/scheduler"
)

// Envelope is the response shape shared by all endpoints.
type Envelope struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
	Data    any    `json:"data,omitempty"`
}

// User is the public representation of a user, it never contains credentials.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest is the body of POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Success bool   `json:"Success"`
	Message string `json:"Message"`
	UserID  uint   `json:"user_id"`
}

// RandomFactResponse is returned by GET /facts/random/.
type RandomFactResponse struct {
	Success bool           `json:"Success"`
	Fact    *database.Fact `json:"Fact"`
}

// FavoriteRequest is the body of POST /favorites/add/.
type FavoriteRequest struct {
	UserID uint `json:"user_id"`
	FactID uint `json:"fact_id"`
}

// FavoriteResult is the data of an add favorite response.
type FavoriteResult struct {
	Favorite *database.Favorite `json:"favorite"`
	Outcome  string             `json:"outcome"`
}

// FavoritesResponse is returned by GET /favorites/:user_id.
type FavoritesResponse struct {
	Success   bool                  `json:"Success"`
	Favorites []engine.FavoriteFact `json:"favorites"`
}

// Stats is the data of GET /stats/.
type Stats struct {
	database.Stats
	Cache cache.Stats         `json:"cache"`
	Jobs  []scheduler.JobInfo `json:"jobs"`
}
