package gravatar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/jon4hz/funfacts/internal/config"
)

const baseURL = "https://www.gravatar.com/avatar/"

var (
	defaultImages = []string{"404", "mp", "identicon", "monsterid", "wavatar", "retro", "robohash", "blank"}
	ratings       = []string{"g", "pg", "r", "x"}
)

// Resolver builds avatar URLs for user emails.
// A nil Resolver or one built from a disabled config returns empty URLs.
type Resolver struct {
	query string
}

// New validates the configuration and returns a Resolver.
func New(cfg *config.GravatarConfig) (*Resolver, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	params := url.Values{}
	if cfg.DefaultImage != "" {
		if !IsValidDefaultImage(cfg.DefaultImage) {
			return nil, fmt.Errorf("invalid gravatar default image %q", cfg.DefaultImage)
		}
		params.Set("d", cfg.DefaultImage)
	}
	if cfg.Rating != "" {
		if !IsValidRating(cfg.Rating) {
			return nil, fmt.Errorf("invalid gravatar rating %q", cfg.Rating)
		}
		params.Set("r", cfg.Rating)
	}
	if cfg.Size != 0 {
		if !IsValidSize(cfg.Size) {
			return nil, fmt.Errorf("invalid gravatar size %d", cfg.Size)
		}
		params.Set("s", strconv.Itoa(cfg.Size))
	}

	return &Resolver{query: params.Encode()}, nil
}

// URL returns the avatar URL of the email, or an empty string.
func (r *Resolver) URL(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	if r == nil || email == "" {
		return ""
	}

	hash := sha256.Sum256([]byte(email))
	u := baseURL + hex.EncodeToString(hash[:])
	if r.query != "" {
		u += "?" + r.query
	}
	return u
}

func IsValidDefaultImage(defaultImage string) bool {
	return slices.Contains(defaultImages, defaultImage)
}

func IsValidRating(rating string) bool {
	return slices.Contains(ratings, rating)
}

// IsValidSize checks the size bounds Gravatar accepts (1-2048 pixels).
func IsValidSize(size int) bool {
	return size >= 1 && size <= 2048
}
