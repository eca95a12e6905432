package main

import (
	"testing"

	"voxheat/config"
	"voxheat/model"
)

func TestNewSimulation_Conf(t *testing.T) {
	cfg, err := config.Load("conf/config.ini")
	if err != nil {
		t.Fatal(err)
	}
	s, err := newSimulation(cfg.Simulation)
	if err != nil {
		t.Fatal(err)
	}
	if s.TimeStep() > s.StableTimeStep() {
		t.Errorf("configured time step %v exceeds stable limit %v", s.TimeStep(), s.StableTimeStep())
	}
	if s.Temperature().At(0) != model.AbsoluteZero {
		t.Errorf("cold pin = %v", s.Temperature().At(0))
	}
}

func TestRunBatch_Default(t *testing.T) {
	cfg := config.Simulation{
		Size:            model.Size{X: 5, Y: 4, Z: 3},
		VoxelEdgeLength: 4,
		TimeStep:        100,
		Iterations:      10,
	}
	if err := runBatch(cfg, 8); err != nil {
		t.Fatal(err)
	}
	cfg.Iterations = 0
	if err := runBatch(cfg, 8); err == nil {
		t.Error("zero iterations accepted")
	}
}
