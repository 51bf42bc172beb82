package sequence

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsPattern(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"/shots/shot.%04d.exr", true},
		{"frame_%d.png", true},
		{"frame%3d.tga", true},
		{"/shots/shot.0001.exr", false},
		{"/100%/clip.mov", false},
		{"clip.mov", false},
		{"sale 100%done.mov", false},
		{"/in/50%d off.mov", false},
	}
	for _, tt := range tests {
		if got := IsPattern(tt.in); got != tt.want {
			t.Errorf("IsPattern(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStripPlaceholder(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"shot.%04d", "shot"},
		{"frame_%d", "frame"},
		{"render-%03d", "render"},
		{"plate%04d", "plate"},
		{"clip", "clip"},
		{"sale 100%done", "sale 100%done"},
	}
	for _, tt := range tests {
		if got := StripPlaceholder(tt.in); got != tt.want {
			t.Errorf("StripPlaceholder(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestStartNumber(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "shot.1003.exr")
	touch(t, dir, "shot.1001.exr")
	touch(t, dir, "shot.1002.exr")
	touch(t, dir, "other.0001.exr")
	touch(t, dir, "shot.0999.png")

	got, ok, err := StartNumber(filepath.Join(dir, "shot.%04d.exr"))
	if err != nil {
		t.Fatalf("StartNumber: %v", err)
	}
	if !ok || got != "1001" {
		t.Errorf("StartNumber = (%q, %v), want (\"1001\", true)", got, ok)
	}
}

func TestStartNumber_NoFrames(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "unrelated.mov")

	_, ok, err := StartNumber(filepath.Join(dir, "shot.%04d.exr"))
	if err != nil {
		t.Fatalf("StartNumber: %v", err)
	}
	if ok {
		t.Error("StartNumber should report no match")
	}
}

func TestStartNumber_NotAPattern(t *testing.T) {
	_, ok, err := StartNumber("/nowhere/clip.mov")
	if err != nil || ok {
		t.Errorf("StartNumber on a plain name = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestStartNumber_MissingDir(t *testing.T) {
	if _, _, err := StartNumber(filepath.Join(t.TempDir(), "gone", "f.%04d.png")); err == nil {
		t.Error("StartNumber should fail when the directory is missing")
	}
}

func TestGroup(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []Unit
	}{
		{
			"padded frames collapse",
			[]string{"shot.0001.png", "shot.0002.png", "shot.0003.png"},
			[]Unit{{Name: "shot.%04d.png", Frames: 3}},
		},
		{
			"unpadded frames use %d",
			[]string{"f1.jpg", "f10.jpg", "f2.jpg"},
			[]Unit{{Name: "f%d.jpg", Frames: 3}},
		},
		{
			"lone frame stays a file",
			[]string{"still.0001.png"},
			[]Unit{{Name: "still.0001.png"}},
		},
		{
			"numbered videos stay individual",
			[]string{"take1.mov", "take2.mov"},
			[]Unit{{Name: "take1.mov"}, {Name: "take2.mov"}},
		},
		{
			"audio is kept",
			[]string{"a.0001.png", "a.0002.png", "mix.wav"},
			[]Unit{{Name: "a.%04d.png", Frames: 2}, {Name: "mix.wav"}},
		},
		{
			"mixed content keeps first-member order",
			[]string{"a.mov", "b.01.tga", "b.02.tga", "c.txt", "d_1.exr", "d_2.exr"},
			[]Unit{
				{Name: "a.mov"},
				{Name: "b.%02d.tga", Frames: 2},
				{Name: "c.txt"},
				{Name: "d_%d.exr", Frames: 2},
			},
		},
		{
			"different tails are separate sequences",
			[]string{"x.001.left.png", "x.001.right.png", "x.002.left.png", "x.002.right.png"},
			[]Unit{
				{Name: "x.%03d.left.png", Frames: 2},
				{Name: "x.%03d.right.png", Frames: 2},
			},
		},
		{
			"frames without a separable placeholder stay individual",
			[]string{"a01b.png", "a02b.png"},
			[]Unit{{Name: "a01b.png"}, {Name: "a02b.png"}},
		},
		{"empty", nil, []Unit{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Group(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Group(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Group(%v)[%d] = %+v, want %+v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}
