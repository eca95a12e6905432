package calculator

import (
	"voxheat/model"
)

// 推送给前端的温度场数据
type TemperatureFieldData struct {
	Size        model.Size               `json:"size"`
	Tick        int                      `json:"tick"`
	Elapsed     float64                  `json:"elapsed"`   // 已模拟的时间，秒
	TimeStep    model.Time               `json:"time_step"` // 秒
	Min         model.Temperature        `json:"min"`
	Max         model.Temperature        `json:"max"`
	Materials   []string                 `json:"materials"` // 下标即材料编号
	Material    []model.MaterialId       `json:"material"`
	Temperature []model.Temperature      `json:"temperature"`
	Heat        []model.HeatTransferRate `json:"heat"`
}

func (s *Simulation) BuildData() *TemperatureFieldData {
	s.mu.Lock()
	defer s.mu.Unlock()
	min, max := TemperatureRange(s.temperature)
	return &TemperatureFieldData{
		Size:        s.material.Size(),
		Tick:        s.tick,
		Elapsed:     s.elapsed,
		TimeStep:    s.timeStep,
		Min:         min,
		Max:         max,
		Materials:   s.lookup.Names(),
		Material:    s.material.Clone().Data(),
		Temperature: s.temperature.Clone().Data(),
		Heat:        s.heat.Clone().Data(),
	}
}
