package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI_TTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, true)

	if _, ok := ui.(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	}
}

func TestNewUI_NonTTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, false)

	if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Errorf("IsTTY(buffer) = true, want false")
	}

	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatalf("CreateTemp() error = %v", err)
	}
	defer f.Close()

	if IsTTY(f) {
		t.Errorf("IsTTY(regular file) = true, want false")
	}
}
