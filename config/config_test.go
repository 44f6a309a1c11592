package config

import (
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ClientName != "midisync" {
		t.Errorf("ClientName = %q", cfg.ClientName)
	}
	if cfg.SysExBufferSize != DefaultSysExBufferSize {
		t.Errorf("SysExBufferSize = %d", cfg.SysExBufferSize)
	}
	if cfg.MaxStreams != DefaultMaxStreams {
		t.Errorf("MaxStreams = %d", cfg.MaxStreams)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ClientName != "midisync" || cfg.SysExBufferSize != DefaultSysExBufferSize {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.SysExChunkSize = 128
	cfg.Sync.LastTempo = 174
	cfg.AddInput(PortConfig{PortName: "DAW out", AutoConnect: true})
	cfg.AddInput(PortConfig{PortName: "keys", AutoConnect: false})

	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.SysExChunkSize != 128 || loaded.Sync.LastTempo != 174 {
		t.Errorf("loaded %+v", loaded)
	}
	if len(loaded.Inputs) != 2 {
		t.Fatalf("got %d inputs", len(loaded.Inputs))
	}
	if p := loaded.FindInput("DAW out"); p == nil || !p.AutoConnect {
		t.Errorf("FindInput = %+v", p)
	}

	auto := loaded.AutoConnectInputs()
	if len(auto) != 1 || auto[0].PortName != "DAW out" {
		t.Errorf("AutoConnectInputs = %+v", auto)
	}
}

func TestAddInputUpdatesExisting(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddInput(PortConfig{PortName: "DAW out", AutoConnect: false})
	cfg.AddInput(PortConfig{PortName: "DAW out", AutoConnect: true})

	if len(cfg.Inputs) != 1 {
		t.Fatalf("got %d inputs, want 1", len(cfg.Inputs))
	}
	if !cfg.Inputs[0].AutoConnect {
		t.Error("update did not replace the entry")
	}
}

func TestFillDefaultsPatchesZeroValues(t *testing.T) {
	cfg := &Config{SysExBufferSize: -1}
	cfg.fillDefaults()
	if cfg.SysExBufferSize != DefaultSysExBufferSize || cfg.MaxStreams != DefaultMaxStreams {
		t.Errorf("fillDefaults left %+v", cfg)
	}
	if cfg.ClientName != "midisync" {
		t.Errorf("ClientName = %q", cfg.ClientName)
	}
}
