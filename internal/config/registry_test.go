package config

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	configDir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error = %v", err)
	}

	// Should not be empty
	if configDir == "" {
		t.Error("GetConfigDir() returned empty string")
	}

	// Should contain "glint"
	if !strings.Contains(configDir, "glint") {
		t.Errorf("GetConfigDir() = %v, should contain 'glint'", configDir)
	}

	// Platform-specific checks
	switch runtime.GOOS {
	case "windows":
		if !strings.Contains(configDir, "AppData") && !strings.Contains(configDir, "Local") {
			t.Errorf("Windows config dir should contain 'AppData' or 'Local', got: %v", configDir)
		}
	case "darwin", "linux":
		if !strings.Contains(configDir, ".config") {
			t.Errorf("Unix config dir should contain '.config', got: %v", configDir)
		}
	}

	t.Logf("Config directory: %s", configDir)
}

func TestGetConfigPath(t *testing.T) {
	configPath, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}

	// Should end with config.yaml
	if filepath.Base(configPath) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", configPath)
	}
}

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()

	if reg.Version != 1 {
		t.Errorf("NewRegistry().Version = %v, want 1", reg.Version)
	}
	if reg.Bulbs == nil {
		t.Error("NewRegistry().Bulbs should be initialized")
	}
	if reg.Preferences == nil {
		t.Fatal("NewRegistry().Preferences should be initialized")
	}
	if reg.Preferences.ScanWindowMS != DefaultScanWindowMS {
		t.Errorf("ScanWindowMS = %v, want %v", reg.Preferences.ScanWindowMS, DefaultScanWindowMS)
	}
	if reg.Preferences.CommandTimeoutMS != DefaultCommandTimeoutMS {
		t.Errorf("CommandTimeoutMS = %v, want %v", reg.Preferences.CommandTimeoutMS, DefaultCommandTimeoutMS)
	}
}

func TestRegistry_EnsureBulb(t *testing.T) {
	reg := NewRegistry()

	bulb := reg.EnsureBulb("0x1")
	if bulb == nil {
		t.Fatal("EnsureBulb() returned nil")
	}

	// Second call returns the same entry
	bulb.Alias = "desk"
	again := reg.EnsureBulb("0x1")
	if again.Alias != "desk" {
		t.Error("EnsureBulb() should return the existing entry")
	}

	// Works on a registry with a nil map (unmarshalled edge case)
	empty := &Registry{Version: 1}
	if empty.EnsureBulb("0x2") == nil {
		t.Error("EnsureBulb() should initialize a nil map")
	}
}

func TestRegistry_UpdateBulbSeen(t *testing.T) {
	reg := NewRegistry()

	before := time.Now()
	reg.UpdateBulbSeen("0x1", "yeelight://10.0.0.5:55443", "color")

	bulb := reg.GetBulb("0x1")
	if bulb == nil {
		t.Fatal("GetBulb() returned nil after UpdateBulbSeen")
	}
	if bulb.Location != "yeelight://10.0.0.5:55443" {
		t.Errorf("Location = %q", bulb.Location)
	}
	if bulb.Model != "color" {
		t.Errorf("Model = %q", bulb.Model)
	}
	if bulb.LastSeen.Before(before) {
		t.Error("LastSeen should be refreshed")
	}

	// A later cycle refreshes the location in place
	reg.UpdateBulbSeen("0x1", "yeelight://10.0.0.9:55443", "color")
	if reg.GetBulb("0x1").Location != "yeelight://10.0.0.9:55443" {
		t.Error("UpdateBulbSeen() should refresh the cached location")
	}
}

func TestRegistry_ResolveAlias(t *testing.T) {
	reg := NewRegistry()
	reg.UpdateBulbSeen("0x1", "yeelight://10.0.0.5:55443", "color")
	reg.SetBulbAlias("0x1", "desk")

	if got := reg.ResolveAlias("desk"); got != "0x1" {
		t.Errorf("ResolveAlias(\"desk\") = %q, want \"0x1\"", got)
	}
	// Unmatched names pass through so ids always work
	if got := reg.ResolveAlias("0x1"); got != "0x1" {
		t.Errorf("ResolveAlias(\"0x1\") = %q, want \"0x1\"", got)
	}
	if got := reg.ResolveAlias("nope"); got != "nope" {
		t.Errorf("ResolveAlias(\"nope\") = %q, want \"nope\"", got)
	}
}

func TestPreferences_Durations(t *testing.T) {
	prefs := &Preferences{
		ScanWindowMS:     2000,
		CommandTimeoutMS: 3000,
		TransitionMS:     250,
	}

	if got := prefs.ScanWindow(); got != 2*time.Second {
		t.Errorf("ScanWindow() = %v", got)
	}
	if got := prefs.CommandTimeout(); got != 3*time.Second {
		t.Errorf("CommandTimeout() = %v", got)
	}
	if got := prefs.Transition(); got != 250*time.Millisecond {
		t.Errorf("Transition() = %v", got)
	}

	// Zero and nil fall back to defaults
	var nilPrefs *Preferences
	if got := nilPrefs.ScanWindow(); got != time.Second {
		t.Errorf("nil ScanWindow() = %v, want 1s", got)
	}
	zero := &Preferences{}
	if got := zero.CommandTimeout(); got != 5*time.Second {
		t.Errorf("zero CommandTimeout() = %v, want 5s", got)
	}
	if got := zero.Transition(); got != 500*time.Millisecond {
		t.Errorf("zero Transition() = %v, want 500ms", got)
	}
}

func TestRegistry_SaveAndReload(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG override not applicable on windows")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	reg := NewRegistry()
	reg.UpdateBulbSeen("0x1", "yeelight://10.0.0.5:55443", "color")
	reg.SetBulbAlias("0x1", "desk")

	if err := reg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error = %v", err)
	}

	bulb := loaded.GetBulb("0x1")
	if bulb == nil {
		t.Fatal("reloaded registry is missing the bulb")
	}
	if bulb.Alias != "desk" {
		t.Errorf("Alias = %q, want \"desk\"", bulb.Alias)
	}
	if bulb.Location != "yeelight://10.0.0.5:55443" {
		t.Errorf("Location = %q", bulb.Location)
	}
}

func TestLoadRegistry_MissingFileYieldsDefaults(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG override not applicable on windows")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	reg, err := loadRegistryFromDisk()
	if err != nil {
		t.Fatalf("loadRegistryFromDisk() error = %v", err)
	}
	if reg.Version != 1 || reg.Preferences == nil {
		t.Error("missing config file should yield a default registry")
	}
}
