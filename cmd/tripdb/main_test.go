package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/tripsplit/internal/config"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	cfg := config.Load()
	dbPath := filepath.Join(t.TempDir(), "trips.db")

	runCmd := func(command string, yes bool) string {
		t.Helper()
		var out bytes.Buffer
		if err := run(ctx, &out, command, dbPath, yes, cfg); err != nil {
			t.Fatalf("%s failed: %v", command, err)
		}
		return out.String()
	}

	if out := runCmd("init", false); !strings.Contains(out, "Trips:    0") {
		t.Errorf("init: unexpected output:\n%s", out)
	}

	out := runCmd("sample", false)
	if !strings.Contains(out, "Sample data added") || !strings.Contains(out, "Expenses: 3") || !strings.Contains(out, "500.00") {
		t.Errorf("sample: unexpected output:\n%s", out)
	}

	if out := runCmd("sample", false); !strings.Contains(out, "skipping sample data") {
		t.Errorf("second sample: unexpected output:\n%s", out)
	}

	out = runCmd("reset", false)
	if !strings.Contains(out, "-yes") || !strings.Contains(out, "Trips:    1") {
		t.Errorf("unconfirmed reset must keep data and report it:\n%s", out)
	}
	if strings.Contains(out, "Database reset") {
		t.Errorf("unconfirmed reset must not reset:\n%s", out)
	}

	if out := runCmd("reset", true); !strings.Contains(out, "Trips:    0") {
		t.Errorf("reset: unexpected output:\n%s", out)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), &out, "explode", filepath.Join(t.TempDir(), "trips.db"), false, config.Load())
	if !errors.Is(err, errUnknownCommand) {
		t.Errorf("expected errUnknownCommand, got %v", err)
	}
}
