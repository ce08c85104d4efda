package update

import (
	"context"
	"errors"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    int
	}{
		{"v0.1.0", "v0.2.0", -1},
		{"v1.0.0", "v1.0.0", 0},
		{"v2.0.0", "v1.0.0", 1},
		{"0.1.0", "v0.1.0", 0},
		{"0.1.0-3-gabcdef", "0.1.0", -1},
		{"0.2.0", "0.1.0-3-gabcdef", 1},
		{"dev", "v1.0.0", -1},
		{"v1.0.0", "dev", 1},
		{"dev", "dev", 0},
		{"v0.1.0", "v0.0.9", 1},
	}

	for _, tt := range tests {
		t.Run(tt.current+"_vs_"+tt.latest, func(t *testing.T) {
			if got := CompareVersions(tt.current, tt.latest); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestCheckSkipsDevBuilds(t *testing.T) {
	c := &Checker{Repo: "justinpbarnett/stickerbox"}
	for _, v := range []string{"dev", ""} {
		rel, err := c.Check(context.Background(), v)
		if err != nil {
			t.Fatalf("Check(%q): unexpected error: %v", v, err)
		}
		if rel != nil {
			t.Errorf("Check(%q): expected nil release, got %+v", v, rel)
		}
	}
}

func TestCheckSkipsDirtyVersion(t *testing.T) {
	c := &Checker{Repo: "justinpbarnett/stickerbox"}
	rel, err := c.Check(context.Background(), "not-a-version")
	if err != nil || rel != nil {
		t.Errorf("expected silent skip, got %+v, %v", rel, err)
	}
}

func TestApplyRefusesDevBuild(t *testing.T) {
	c := &Checker{Repo: "justinpbarnett/stickerbox"}
	if _, err := c.Apply(context.Background(), "dev"); !errors.Is(err, ErrDevBuild) {
		t.Errorf("expected ErrDevBuild, got %v", err)
	}
}

func TestParseSemver(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"v1.0.0", false},
		{"1.0.0", false},
		{"0.1.0-3-gabcdef", false},
		{"v0.1.0-rc.1", false},
		{"dev", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parseSemver(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("parseSemver(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
