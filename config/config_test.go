package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/ini.v1"
	"voxheat/model"
)

func TestLoadCfg_Defaults(t *testing.T) {
	cfg := loadCfg(ini.Empty())
	want := Config{
		Simulation: Simulation{
			Size:            model.Size{X: 5, Y: 4, Z: 3},
			VoxelEdgeLength: 4,
			TimeStep:        100,
			Iterations:      10000,
			PushInterval:    100,
		},
		Server: Server{Addr: ":9000"},
		Log:    Log{Level: "info"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	src := `[simulation]
SizeX = 10
SizeY = 8
SizeZ = 6
VoxelEdgeLength = 0.5
TimeStep = 2.5
Iterations = 20
Scenario = conf/scenario.hcl

[server]
Addr = :8080

[log]
Level = debug
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Simulation: Simulation{
			Size:            model.Size{X: 10, Y: 8, Z: 6},
			VoxelEdgeLength: 0.5,
			TimeStep:        2.5,
			Iterations:      20,
			PushInterval:    100,
			Scenario:        "conf/scenario.hcl",
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "debug"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load (-want +got):\n%s", diff)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Size != (model.Size{X: 5, Y: 4, Z: 3}) {
		t.Errorf("size = %v", cfg.Simulation.Size)
	}
}

func TestLoad_Invalid(t *testing.T) {
	for _, src := range []string{
		"[simulation]\nSizeX = 0\n",
		"[simulation]\nTimeStep = -1\n",
		"[simulation]\nVoxelEdgeLength = 0\n",
		"[log]\nLevel = loud\n",
	} {
		path := filepath.Join(t.TempDir(), "config.ini")
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%q) succeeded", src)
		}
	}
}

func TestLoad_Conf(t *testing.T) {
	cfg, err := Load("../conf/config.ini")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Simulation.Scenario == "" || cfg.Simulation.Materials == "" {
		t.Errorf("conf/config.ini = %+v", cfg.Simulation)
	}
}
