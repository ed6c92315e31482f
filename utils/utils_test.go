package utils

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func TestExpandPath_Tilde(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	got := ExpandPath("~/projects")
	want := filepath.Join(home, "projects")
	if got != want {
		t.Errorf("ExpandPath(~/projects) = %q, want %q", got, want)
	}
}

func TestExpandPath_PlainPathsCleaned(t *testing.T) {
	got := ExpandPath("output//tts-cache/")
	if got != filepath.Join("output", "tts-cache") {
		t.Errorf("ExpandPath = %q", got)
	}
	if strings.HasPrefix(got, "~") {
		t.Errorf("unexpanded tilde in %q", got)
	}
}
