package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "system.conf")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfig_MemorySections(t *testing.T) {
	path := writeTempConfig(t, `
# comment line
[MEMORY 1]
ram 0 240
rom 240 16
boot 0xF000

sio0_baud_rate 9600
sio0_upper_case 1
fp_port 0xFF
vdm_scanlines 1
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Sections[0].Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(cfg.Sections[0].Segments))
	}
	if cfg.Sections[0].BootSwitch != 0xF000 {
		t.Fatalf("expected boot switch 0xF000, got %04X", cfg.Sections[0].BootSwitch)
	}
	if cfg.SIO[0].BaudRate != 9600 || !cfg.SIO[0].UpperCase {
		t.Fatalf("unexpected sio0 config: %+v", cfg.SIO[0])
	}
	if cfg.FPPort != 0xFF {
		t.Fatalf("expected fp_port 0xFF, got %02X", cfg.FPPort)
	}
	if !cfg.VDMScanlines {
		t.Fatal("expected vdm_scanlines enabled")
	}
}

func TestLoadConfig_InvalidLinesAreSkippedNotFatal(t *testing.T) {
	path := writeTempConfig(t, `
[MEMORY 1]
ram 0 9999
ram 0 10
unknown_directive foo
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("expected invalid lines to warn, not fail parse: %v", err)
	}
	if len(cfg.Sections[0].Segments) != 1 {
		t.Fatalf("expected only the valid ram directive to apply, got %d segments", len(cfg.Sections[0].Segments))
	}
}

func TestLoadConfig_MissingFileErrors(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/system.conf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
