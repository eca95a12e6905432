package calculator

import (
	"math"

	"voxheat/model"
)

// 两种材料串联的热导，不传热时为 0
func conductance(a, b *model.VoxelMaterial) float32 {
	if a.Mass == 0 || b.Mass == 0 {
		return 0
	}
	resistance := a.ThermalResistance + b.ThermalResistance
	if isInf(resistance) {
		return 0
	}
	return 1 / resistance
}

// 显式格式的稳定时间步长上限：对所有热容有限的体素，deltaT * sum(G) / C <= 1
// 只用于诊断，计算过程中不会据此修改时间步长
func StableTimeStep(material *MaterialField, table []model.VoxelMaterial) (model.Time, error) {
	if err := checkMaterial(material, table); err != nil {
		return 0, err
	}
	size := material.Size()
	m := material.Data()
	sx, sy, sz := size.X, size.Y, size.Z
	sxy := sx * sy
	min := math.Inf(1)
	i := 0
	for z := 0; z < sz; z++ {
		for y := 0; y < sy; y++ {
			for x := 0; x < sx; x++ {
				p := &table[m[i]]
				if p.HeatCapacity == 0 || isInf(p.HeatCapacity) {
					i++
					continue
				}
				var g float64
				if x > 0 {
					g += float64(conductance(&table[m[i-1]], p))
				}
				if x+1 < sx {
					g += float64(conductance(&table[m[i+1]], p))
				}
				if y > 0 {
					g += float64(conductance(&table[m[i-sx]], p))
				}
				if y+1 < sy {
					g += float64(conductance(&table[m[i+sx]], p))
				}
				if z > 0 {
					g += float64(conductance(&table[m[i-sxy]], p))
				}
				if z+1 < sz {
					g += float64(conductance(&table[m[i+sxy]], p))
				}
				if g > 0 {
					if limit := float64(p.HeatCapacity) / g; limit < min {
						min = limit
					}
				}
				i++
			}
		}
	}
	return model.Time(min), nil
}

// 热容有限的体素的内能之和 C*T，单位焦耳
func TotalEnergy(material *MaterialField, temperature *TemperatureField, table []model.VoxelMaterial) (float64, error) {
	if material.Size() != temperature.Size() {
		return 0, ErrSizeMismatch
	}
	if err := checkMaterial(material, table); err != nil {
		return 0, err
	}
	m := material.Data()
	var energy float64
	for i, t := range temperature.Data() {
		heatCapacity := table[m[i]].HeatCapacity
		if heatCapacity == 0 || isInf(heatCapacity) {
			continue
		}
		energy += float64(heatCapacity) * float64(t)
	}
	return energy, nil
}

func TemperatureRange(temperature *TemperatureField) (min, max model.Temperature) {
	data := temperature.Data()
	min, max = data[0], data[0]
	for _, t := range data[1:] {
		if t < min {
			min = t
		}
		if t > max {
			max = t
		}
	}
	return
}
