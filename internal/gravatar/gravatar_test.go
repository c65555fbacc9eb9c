package gravatar

import (
	"testing"

	"github.com/jon4hz/funfacts/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHash = "973dfe463ec85785f5f95af5ba3906eedb2d931c24e69824a89ea65dba4e813b"

func TestResolverURL(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		config   *config.GravatarConfig
		expected string
	}{
		{
			name:     "disabled gravatar",
			email:    "test@example.com",
			config:   &config.GravatarConfig{Enabled: false},
			expected: "",
		},
		{
			name:     "nil config",
			email:    "test@example.com",
			expected: "",
		},
		{
			name:     "empty email",
			email:    "   ",
			config:   &config.GravatarConfig{Enabled: true},
			expected: "",
		},
		{
			name:     "basic enabled config",
			email:    "test@example.com",
			config:   &config.GravatarConfig{Enabled: true},
			expected: baseURL + testHash,
		},
		{
			name:  "all options",
			email: "  TEST@EXAMPLE.COM ",
			config: &config.GravatarConfig{
				Enabled:      true,
				DefaultImage: "identicon",
				Rating:       "pg",
				Size:         120,
			},
			expected: baseURL + testHash + "?d=identicon&r=pg&s=120",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.config)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r.URL(tt.email))
		})
	}
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		config *config.GravatarConfig
	}{
		{"default image", &config.GravatarConfig{Enabled: true, DefaultImage: "MP"}},
		{"rating", &config.GravatarConfig{Enabled: true, Rating: "nc17"}},
		{"size", &config.GravatarConfig{Enabled: true, Size: 4096}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			assert.Error(t, err)
		})
	}
}

func TestValidators(t *testing.T) {
	for _, img := range []string{"404", "mp", "identicon", "blank"} {
		assert.True(t, IsValidDefaultImage(img), img)
	}
	for _, img := range []string{"", "invalid", "404x"} {
		assert.False(t, IsValidDefaultImage(img), img)
	}
	for _, rating := range []string{"g", "pg", "r", "x"} {
		assert.True(t, IsValidRating(rating), rating)
	}
	assert.False(t, IsValidRating("G"))
	assert.True(t, IsValidSize(1))
	assert.True(t, IsValidSize(2048))
	assert.False(t, IsValidSize(0))
	assert.False(t, IsValidSize(2049))
}
