package schema

import "testing"

func TestNewLocalID_MatchesPattern(t *testing.T) {
	for i := 0; i < 10; i++ {
		id := NewLocalID()
		if !IsLocalID(id) {
			t.Fatalf("generated id %q does not satisfy the identity pattern", id)
		}
	}
}

func TestIsLocalID(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{value: "8c1b5d42-1f3a-4b7e-9c2d-0a1b2c3d4e5f", want: true},
		{value: "8C1B5D42-1F3A-4B7E-9C2D-0A1B2C3D4E5F", want: true},
		{value: "", want: false},
		{value: "not-a-uuid", want: false},
		{value: "8c1b5d421f3a4b7e9c2d0a1b2c3d4e5f", want: false},
		{value: "{8c1b5d42-1f3a-4b7e-9c2d-0a1b2c3d4e5f}", want: false},
	}
	for _, tc := range cases {
		if got := IsLocalID(tc.value); got != tc.want {
			t.Fatalf("IsLocalID(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}

func TestLocalIDProperty_FreshCopy(t *testing.T) {
	first := LocalIDProperty()
	first["pattern"] = "changed"
	first["options"].(map[string]any)["hidden"] = false

	second := LocalIDProperty()
	if second["pattern"] != LocalIDPattern {
		t.Fatalf("expected pattern to be untouched, got %v", second["pattern"])
	}
	if second["options"].(map[string]any)["hidden"] != true {
		t.Fatalf("expected hidden option to be untouched")
	}
}
