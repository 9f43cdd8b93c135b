package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackingSnippet(t *testing.T) {
	snippet := TrackingSnippet("site-123", "https://cdn.example.com/t.js")

	want := `<script>window.clutterConfig={siteId:"site-123"}</script><script defer src="https://cdn.example.com/t.js"></script>`
	assert.Equal(t, want, snippet)
}

func TestTrackingSnippet_DefaultScript(t *testing.T) {
	snippet := TrackingSnippet("abc", "")
	assert.Contains(t, snippet, DefaultTrackerScriptURL)
}

func TestUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user *User
		want string
	}{
		{"Nil", nil, ""},
		{"Username", &User{Username: "jane", Email: "jane@example.com"}, "jane"},
		{"EmailFallback", &User{Email: "jane@example.com"}, "jane@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.DisplayName())
		})
	}
}
