package material

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"voxheat/model"
)

func TestDerive(t *testing.T) {
	length := float32(4.0)
	vm := Derive(Iron, length)
	volume := length * length * length
	mass := Iron.Density * volume
	want := model.VoxelMaterial{
		Phase:             model.Solid,
		Mass:              mass,
		ThermalResistance: 1 / (2 * Iron.ThermalConductivity * length),
		HeatCapacity:      mass * Iron.SpecificHeatCapacity,
	}
	if diff := cmp.Diff(want, vm); diff != "" {
		t.Errorf("Derive(Iron) (-want +got):\n%s", diff)
	}
	if vm.ThermalResistance != 0.0025 {
		t.Errorf("resistance = %v, want 0.0025", vm.ThermalResistance)
	}
}

func TestDeriveDegenerate(t *testing.T) {
	vacuum := Derive(Vacuum, 1)
	if vacuum.Mass != 0 || vacuum.HeatCapacity != 0 {
		t.Errorf("vacuum mass = %v, heat capacity = %v", vacuum.Mass, vacuum.HeatCapacity)
	}
	if !math.IsInf(float64(vacuum.ThermalResistance), 1) {
		t.Errorf("vacuum resistance = %v, want +Inf", vacuum.ThermalResistance)
	}

	sink := Derive(InfiniteHeatSink, 1)
	if !math.IsInf(float64(sink.HeatCapacity), 1) {
		t.Errorf("sink heat capacity = %v, want +Inf", sink.HeatCapacity)
	}
	if sink.Mass != 10 {
		t.Errorf("sink mass = %v", sink.Mass)
	}
}

func TestLookup(t *testing.T) {
	l, err := DefaultLookup(4)
	if err != nil {
		t.Fatal(err)
	}
	for i, m := range Presets() {
		id, err := l.Id(m.Name)
		if err != nil {
			t.Fatal(err)
		}
		if int(id) != i {
			t.Errorf("Id(%q) = %d, want %d", m.Name, id, i)
		}
		vm, err := l.Material(id)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(Derive(m, 4), vm); diff != "" {
			t.Errorf("Material(%d) (-want +got):\n%s", id, diff)
		}
	}
	if l.Len() != len(Presets()) {
		t.Errorf("len = %d", l.Len())
	}
	if l.Names()[3] != "Iron" {
		t.Errorf("names = %v", l.Names())
	}

	if _, err := l.Id("Unobtainium"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Id(unknown) err = %v", err)
	}
	if _, err := l.Material(model.MaterialId(l.Len())); !errors.Is(err, ErrNotFound) {
		t.Errorf("Material(len) err = %v", err)
	}
}

func TestLookup_Duplicate(t *testing.T) {
	l := NewLookup(1)
	if _, err := l.Add(Iron); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Add(Iron); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("duplicate err = %v", err)
	}
	if l.Len() != 1 {
		t.Errorf("len = %d after rejected duplicate", l.Len())
	}
	id, _ := l.Id("Iron")
	if id != 0 {
		t.Errorf("id = %d, want 0", id)
	}
}

func TestLookup_Freeze(t *testing.T) {
	l := NewLookup(1)
	l.Freeze()
	if _, err := l.Add(Water); !errors.Is(err, ErrFrozen) {
		t.Fatalf("add after freeze err = %v", err)
	}
	if !l.Frozen() {
		t.Error("not frozen")
	}
}

func TestLoadLookup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.json")
	src := `[
  {"name": "Iron", "phase": "solid", "specific_heat_capacity": 460, "thermal_conductivity": 50, "density": 7.874, "viscosity": "inf"},
  {"name": "Sink", "phase": "solid", "specific_heat_capacity": "inf", "thermal_conductivity": 100, "density": 10, "viscosity": "inf"}
]`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLookup(path, 4)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Iron", "Sink"}, l.Names()); diff != "" {
		t.Errorf("names (-want +got):\n%s", diff)
	}
	sink, _ := l.Material(1)
	if !math.IsInf(float64(sink.HeatCapacity), 1) {
		t.Errorf("sink heat capacity = %v", sink.HeatCapacity)
	}
}

func TestLoadFile_Conf(t *testing.T) {
	materials, err := LoadFile("../conf/materials.json")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Presets(), materials); diff != "" {
		t.Errorf("conf/materials.json differs from presets (-want +got):\n%s", diff)
	}
}
