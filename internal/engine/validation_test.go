package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestError(t *testing.T) {
	type favoriteBody struct {
		UserID uint `json:"user_id"`
		FactID uint `json:"fact_id"`
	}

	tests := []struct {
		name    string
		body    string
		target  any
		message string
	}{
		{
			name:    "negative id",
			body:    `{"user_id": -1, "fact_id": 2}`,
			target:  &favoriteBody{},
			message: "user_id: Must be a non-negative integer",
		},
		{
			name:    "string instead of id",
			body:    `{"user_id": 1, "fact_id": "two"}`,
			target:  &favoriteBody{},
			message: "fact_id: Must be a non-negative integer",
		},
		{
			name:    "number instead of text",
			body:    `{"content": 42, "category": "biology"}`,
			target:  &NewFact{},
			message: "content: Must be a string",
		},
		{
			name:    "optional creator id",
			body:    `{"content": "x", "category": "y", "user_id": true}`,
			target:  &NewFact{},
			message: "user_id: Must be a non-negative integer",
		},
		{
			name:    "malformed json",
			body:    `{not json`,
			target:  &favoriteBody{},
			message: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decodeErr := json.Unmarshal([]byte(tt.body), tt.target)
			if !assert.Error(t, decodeErr) {
				return
			}

			err := RequestError(decodeErr)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tt.message, Message(err))
		})
	}
}

func TestValidateInput_FieldMessages(t *testing.T) {
	err := validateInput(UserUpdate{Email: new(string)}, "unused")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "email: Invalid email format", Message(err))

	empty := ""
	err = validateInput(FactUpdate{Content: &empty, Category: &empty}, "unused")
	assert.Equal(t, "content: Must not be empty; category: Must not be empty", Message(err))
}
