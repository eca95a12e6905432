package scenario

import (
	"voxheat/material"
	"voxheat/model"
	"voxheat/volume"
)

// 统计坐标位于几个方向的边界上
func edges(size model.Size, x, y, z int) int {
	n := 0
	if x == 0 || x == size.X-1 {
		n++
	}
	if y == 0 || y == size.Y-1 {
		n++
	}
	if z == 0 || z == size.Z-1 {
		n++
	}
	return n
}

// 位于至少 minEdges 个方向边界上的体素设为 frame，其余不变
func FillFrame(m *volume.Volume[model.MaterialId], lookup *material.Lookup, frame string, minEdges int) error {
	id, err := lookup.Id(frame)
	if err != nil {
		return err
	}
	size := m.Size()
	for i := 0; i < m.Len(); i++ {
		x, y, z := m.Coordinate(i)
		if edges(size, x, y, z) >= minEdges {
			m.SetAt(i, id)
		}
	}
	return nil
}

// 棱和角为铁，其余为硬木
func FillTestMaterial(m *volume.Volume[model.MaterialId], lookup *material.Lookup) error {
	wood, err := lookup.Id(material.Hardwood.Name)
	if err != nil {
		return err
	}
	m.Fill(wood)
	return FillFrame(m, lookup, material.Iron.Name, 2)
}

// 第一个体素为绝对零度的热汇，最后一个体素为钨熔点温度的热源，其余为室温
func FillHeatSourceAndSink(m *volume.Volume[model.MaterialId], temperature *volume.Volume[model.Temperature], lookup *material.Lookup) error {
	sink, err := lookup.Id(material.InfiniteHeatSink.Name)
	if err != nil {
		return err
	}
	hot, cold := m.Len()-1, 0
	m.SetAt(hot, sink)
	m.SetAt(cold, sink)
	temperature.Fill(model.RoomTemperature)
	temperature.SetAt(hot, model.TungstenMelting)
	temperature.SetAt(cold, model.AbsoluteZero)
	return nil
}
