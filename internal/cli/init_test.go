package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunInit(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	initForce = false

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	configDir := filepath.Join(tmpDir, ".ethos")

	data, err := os.ReadFile(filepath.Join(configDir, "config.yaml"))
	if err != nil {
		t.Fatalf("config.yaml not created: %v", err)
	}
	if !strings.Contains(string(data), "thresholds") {
		t.Error("config.yaml missing thresholds section")
	}

	if _, err := os.Stat(filepath.Join(configDir, "pending")); err != nil {
		t.Error("pending directory not created")
	}

	data, err = os.ReadFile(filepath.Join(configDir, "scenarios", "transaction-safety.yaml"))
	if err != nil {
		t.Fatalf("sample scenario not created: %v", err)
	}
	if !strings.Contains(string(data), "0xknownScamAddress") {
		t.Error("sample scenario missing scam case")
	}
}

func TestRunInitNoOverwriteWithoutForce(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	initForce = false

	configPath := filepath.Join(tmpDir, ".ethos", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("custom: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	data, _ := os.ReadFile(configPath)
	if !strings.Contains(string(data), "custom: true") {
		t.Error("existing config.yaml was overwritten without --force")
	}
}

func TestRunInitForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	initForce = true
	defer func() { initForce = false }()

	configPath := filepath.Join(tmpDir, ".ethos", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(configPath, []byte("custom: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	data, _ := os.ReadFile(configPath)
	if strings.Contains(string(data), "custom: true") {
		t.Error("--force did not overwrite existing config.yaml")
	}
}
