package validation

import (
	"testing"

	"github.com/devconnect/devconnect-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var registerMessages = Messages{
	"Name":     "Name is required",
	"Email":    "Please include a valid email",
	"Password": "Please enter a password with 6 or more characters",
}

var profileMessages = Messages{
	"Status":          "Status is required",
	"Skills.required": "Skills is required",
	"Skills":          "Skills should be an array of strings",
}

func msgs(items []dto.ErrorItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Msg)
	}
	return out
}

func TestCheckPassesValidInput(t *testing.T) {
	items := Check(&dto.RegisterRequest{Name: "A", Email: "a@x.com", Password: "secret1"}, registerMessages)
	assert.Nil(t, items)
}

func TestCheckRegisterMessages(t *testing.T) {
	items := Check(&dto.RegisterRequest{Email: "not-an-email", Password: "short"}, registerMessages)
	require.NotNil(t, items)
	assert.ElementsMatch(t, []string{
		"Name is required",
		"Please include a valid email",
		"Please enter a password with 6 or more characters",
	}, msgs(items))
}

func TestCheckProfileSkillsRules(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.ProfileRequest
		expected []string
	}{
		{
			name:     "missing everything",
			req:      dto.ProfileRequest{},
			expected: []string{"Status is required", "Skills is required"},
		},
		{
			name: "too many skills",
			req: dto.ProfileRequest{
				Status: "Dev",
				Skills: []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			},
			expected: []string{"Skills should be an array of strings"},
		},
		{
			name: "empty skill entry",
			req: dto.ProfileRequest{
				Status: "Dev",
				Skills: []string{"go", ""},
			},
			expected: []string{"Skills should be an array of strings"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Check(&tt.req, profileMessages)
			require.NotNil(t, items)
			assert.ElementsMatch(t, tt.expected, msgs(items))
		})
	}
}

func TestCheckFallbackMessage(t *testing.T) {
	items := Check(&dto.LoginRequest{}, Messages{})
	require.NotNil(t, items)
	for _, it := range items {
		assert.Contains(t, it.Msg, "is invalid")
	}
}
