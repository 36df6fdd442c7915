package theme

import "testing"

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  Mode
		ok    bool
	}{
		{"light", Light, true},
		{" DARK ", Dark, true},
		{"System", System, true},
		{"sepia", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			got, ok := Parse(tt.value)
			if got != tt.want || ok != tt.ok {
				t.Fatalf("Parse(%q) = (%q, %t), want (%q, %t)", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	t.Parallel()

	if got := Light.Toggle(); got != Dark {
		t.Fatalf("Light.Toggle() = %q, want dark", got)
	}
	if got := Dark.Toggle(); got != Light {
		t.Fatalf("Dark.Toggle() = %q, want light", got)
	}
	if got := System.Toggle(); got != Dark {
		t.Fatalf("System.Toggle() = %q, want dark", got)
	}
	for _, mode := range []Mode{Light, Dark} {
		if got := mode.Toggle().Toggle(); got != mode {
			t.Fatalf("toggling %q twice = %q", mode, got)
		}
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	t.Parallel()

	if got := Resolve(Dark); got.HTMLClass != "dark" {
		t.Fatalf("Resolve(dark).HTMLClass = %q", got.HTMLClass)
	}
	if got := Resolve("neon"); got.Mode != DefaultMode {
		t.Fatalf("Resolve(unknown).Mode = %q, want %q", got.Mode, DefaultMode)
	}
}

func TestOptionsCoverEveryMode(t *testing.T) {
	t.Parallel()

	seen := map[Mode]bool{}
	for _, option := range Options() {
		seen[option.Value] = true
		if Resolve(option.Value).Mode != option.Value {
			t.Fatalf("option %q has no palette", option.Value)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected three modes, got %v", seen)
	}
}
