package shader

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestMat4f(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3)
	f := Mat4f(m)

	// Column-major: translation lives in elements 12..14.
	if f[12] != 1 || f[13] != 2 || f[14] != 3 || f[15] != 1 {
		t.Errorf("translation column = %v, want [1 2 3 1]", f[12:16])
	}
	if f[0] != 1 || f[5] != 1 || f[10] != 1 {
		t.Errorf("diagonal = %v %v %v, want 1 1 1", f[0], f[5], f[10])
	}
}

func TestTerminate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"uModel", "uModel\x00"},
		{"uModel\x00", "uModel\x00"},
		{"", "\x00"},
	}
	for _, tt := range tests {
		if got := terminate(tt.in); got != tt.want {
			t.Errorf("terminate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
