package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"Fits", "/about", 10, "/about"},
		{"Exact", "/about", 6, "/about"},
		{"Cut", "/blog/posts/long", 8, "/blog/p…"},
		{"One", "/about", 1, "…"},
		{"Zero", "/about", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.width))
		})
	}
}

func TestGetDeviceStyleWraps(t *testing.T) {
	first := GetDeviceStyle(0).GetForeground()
	wrapped := GetDeviceStyle(len(DeviceColors)).GetForeground()
	assert.Equal(t, first, wrapped)
	assert.Equal(t, first, GetDeviceStyle(-3).GetForeground())
}

func TestCenterBoth(t *testing.T) {
	out := CenterBoth("x", 5, 3)
	assert.Contains(t, out, "x")
}
