package calculator

import (
	"errors"
	"fmt"
	"math"

	"voxheat/model"
	"voxheat/volume"
)

var (
	ErrSizeMismatch    = errors.New("calculator: field sizes differ")
	ErrUnknownMaterial = errors.New("calculator: material id not in table")
)

type (
	MaterialField    = volume.Volume[model.MaterialId]
	TemperatureField = volume.Volume[model.Temperature]
	HeatField        = volume.Volume[model.HeatTransferRate]
)

// 两个相邻体素之间的传热速率，from 传给 to 为正
// 任一材料质量为零或串联热阻无限大时不传热
func transfer(from *model.VoxelMaterial, fromTemp model.Temperature, to *model.VoxelMaterial, toTemp model.Temperature) model.HeatTransferRate {
	if from.Mass == 0 || to.Mass == 0 {
		return 0
	}
	resistance := from.ThermalResistance + to.ThermalResistance
	if isInf(resistance) {
		return 0
	}
	return (fromTemp - toTemp) / resistance
}

// 计算每个体素从六个相邻体素得到的热流，结果写入 heat
// 边界上的体素只计算存在的邻居，即绝热边界
func CalculateHeatTransfer(material *MaterialField, temperature *TemperatureField, heat *HeatField, table []model.VoxelMaterial) error {
	if err := checkFields(material, temperature, heat, table); err != nil {
		return err
	}
	calculateHeatTransfer(material.Data(), temperature.Data(), heat.Data(), material.Size(), table)
	return nil
}

func calculateHeatTransfer(m []model.MaterialId, t []model.Temperature, h []model.HeatTransferRate, size model.Size, table []model.VoxelMaterial) {
	sx, sy, sz := size.X, size.Y, size.Z
	sxy := sx * sy
	i := 0
	for z := 0; z < sz; z++ {
		for y := 0; y < sy; y++ {
			for x := 0; x < sx; x++ {
				to := &table[m[i]]
				toTemp := t[i]
				var rate model.HeatTransferRate
				if x > 0 {
					rate += transfer(&table[m[i-1]], t[i-1], to, toTemp)
				}
				if x+1 < sx {
					rate += transfer(&table[m[i+1]], t[i+1], to, toTemp)
				}
				if y > 0 {
					rate += transfer(&table[m[i-sx]], t[i-sx], to, toTemp)
				}
				if y+1 < sy {
					rate += transfer(&table[m[i+sx]], t[i+sx], to, toTemp)
				}
				if z > 0 {
					rate += transfer(&table[m[i-sxy]], t[i-sxy], to, toTemp)
				}
				if z+1 < sz {
					rate += transfer(&table[m[i+sxy]], t[i+sxy], to, toTemp)
				}
				h[i] = rate
				i++
			}
		}
	}
}

// 将热流作用于温度场，时间步长为 deltaT
// 热容无限大（固定温度）或为零（真空）的体素温度不变
func ApplyHeat(material *MaterialField, temperature *TemperatureField, heat *HeatField, table []model.VoxelMaterial, deltaT model.Time) error {
	if err := checkFields(material, temperature, heat, table); err != nil {
		return err
	}
	applyHeat(material.Data(), temperature.Data(), heat.Data(), table, deltaT)
	return nil
}

func applyHeat(m []model.MaterialId, t []model.Temperature, h []model.HeatTransferRate, table []model.VoxelMaterial, deltaT model.Time) {
	for i := range t {
		heatCapacity := table[m[i]].HeatCapacity
		if heatCapacity == 0 || isInf(heatCapacity) {
			continue
		}
		// 功率 * 时间 = 能量，能量 / 热容 = 温度变化
		energy := h[i] * deltaT
		t[i] += energy / heatCapacity
	}
}

func checkFields(material *MaterialField, temperature *TemperatureField, heat *HeatField, table []model.VoxelMaterial) error {
	size := material.Size()
	if temperature.Size() != size || heat.Size() != size {
		return fmt.Errorf("%w: material %v, temperature %v, heat %v",
			ErrSizeMismatch, size, temperature.Size(), heat.Size())
	}
	return checkMaterial(material, table)
}

func checkMaterial(material *MaterialField, table []model.VoxelMaterial) error {
	for i, id := range material.Data() {
		if int(id) >= len(table) {
			x, y, z := material.Coordinate(i)
			return fmt.Errorf("%w: id %d at (%d, %d, %d), %d materials registered",
				ErrUnknownMaterial, id, x, y, z, len(table))
		}
	}
	return nil
}

func isInf(f float32) bool {
	return math.IsInf(float64(f), 1)
}
