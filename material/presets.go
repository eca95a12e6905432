package material

import (
	"math"

	"voxheat/model"
)

// 常用材料的物性参数，密度单位为 g/cm3
var (
	Air = model.PhysicsMaterial{
		Name:                 "Air",
		Phase:                model.Gas,
		SpecificHeatCapacity: 1006.0,
		ThermalConductivity:  0.024,
		Density:              0.0012,
		Viscosity:            0.0181,
	}
	Water = model.PhysicsMaterial{
		Name:                 "Water",
		Phase:                model.Liquid,
		SpecificHeatCapacity: 4200.0,
		ThermalConductivity:  0.66,
		Density:              0.997,
		Viscosity:            1.0,
	}
	Rock = model.PhysicsMaterial{
		Name:                 "Rock",
		Phase:                model.Solid,
		SpecificHeatCapacity: 800.0,
		ThermalConductivity:  4.0,
		Density:              2.65,
		Viscosity:            inf,
	}
	Ice = model.PhysicsMaterial{
		Name:                 "Ice",
		Phase:                model.Solid,
		SpecificHeatCapacity: 2040.0,
		ThermalConductivity:  2.18,
		Density:              0.997,
		Viscosity:            inf,
	}
	Iron = model.PhysicsMaterial{
		Name:                 "Iron",
		Phase:                model.Solid,
		SpecificHeatCapacity: 460.0,
		ThermalConductivity:  50.0,
		Density:              7.874,
		Viscosity:            inf,
	}
	Dirt = model.PhysicsMaterial{
		Name:                 "Dirt",
		Phase:                model.Solid,
		SpecificHeatCapacity: 800.0,
		ThermalConductivity:  0.25,
		Density:              1.51,
		Viscosity:            inf,
	}
	Sand = model.PhysicsMaterial{
		Name:                 "Sand",
		Phase:                model.Grain,
		SpecificHeatCapacity: 830.0,
		ThermalConductivity:  0.2,
		Density:              2.1,
		Viscosity:            inf,
	}
	Hardwood = model.PhysicsMaterial{
		Name:                 "Hardwood",
		Phase:                model.Solid,
		SpecificHeatCapacity: 2000.0,
		ThermalConductivity:  0.16,
		Density:              0.65,
		Viscosity:            inf,
	}
	Softwood = model.PhysicsMaterial{
		Name:                 "Softwood",
		Phase:                model.Solid,
		SpecificHeatCapacity: 2300.0,
		ThermalConductivity:  0.12,
		Density:              0.49,
		Viscosity:            inf,
	}
	// 热容无限大，温度不随热流变化，用于固定温度的边界
	InfiniteHeatSink = model.PhysicsMaterial{
		Name:                 "Infinite Heat Sink",
		Phase:                model.Solid,
		SpecificHeatCapacity: inf,
		ThermalConductivity:  100.0,
		Density:              10.0,
		Viscosity:            inf,
	}
	// 真空，质量为零，不传热
	Vacuum = model.PhysicsMaterial{
		Name:  "Vacuum",
		Phase: model.Gas,
	}
)

var inf = float32(math.Inf(1))

// 默认材料表，注册顺序即材料编号
func Presets() []model.PhysicsMaterial {
	return []model.PhysicsMaterial{
		Air,
		Hardwood,
		Softwood,
		Iron,
		Ice,
		Dirt,
		Rock,
		Sand,
		Water,
		InfiniteHeatSink,
		Vacuum,
	}
}

// 以默认材料表创建 Lookup
func DefaultLookup(length model.Length) (*Lookup, error) {
	l := NewLookup(length)
	for _, m := range Presets() {
		if _, err := l.Add(m); err != nil {
			return nil, err
		}
	}
	return l, nil
}
