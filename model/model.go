package model

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// 物态
type Phase int

const (
	Solid Phase = iota
	Grain
	Liquid
	Gas
)

var phaseNames = [...]string{"solid", "grain", "liquid", "gas"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Phase(" + strconv.Itoa(int(p)) + ")"
	}
	return phaseNames[p]
}

func ParsePhase(s string) (Phase, error) {
	for i, name := range phaseNames {
		if strings.EqualFold(s, name) {
			return Phase(i), nil
		}
	}
	return 0, fmt.Errorf("unknown phase %q", s)
}

func (p Phase) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Phase) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := ParsePhase(s)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Float 在 json 中允许使用 "inf" 表示正无穷，用于无限热容的材料
type Float float32

func (f Float) MarshalJSON() ([]byte, error) {
	if math.IsInf(float64(f), 1) {
		return []byte(`"inf"`), nil
	}
	return json.Marshal(float32(f))
}

func (f *Float) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch strings.ToLower(strings.TrimPrefix(s, "+")) {
		case "inf", "infinity":
			*f = Float(math.Inf(1))
			return nil
		}
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", s, err)
		}
		*f = Float(v)
		return nil
	}
	var v float32
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// 宏观物性参数，由配置提供，不可修改
type PhysicsMaterial struct {
	Name                 string               `json:"name"`
	Phase                Phase                `json:"phase"`
	SpecificHeatCapacity SpecificHeatCapacity `json:"-"`
	ThermalConductivity  ThermalConductivity  `json:"-"`
	Density              Density              `json:"-"`
	Viscosity            Viscosity            `json:"-"`
}

type physicsMaterialJSON struct {
	Name                 string `json:"name"`
	Phase                Phase  `json:"phase"`
	SpecificHeatCapacity Float  `json:"specific_heat_capacity"`
	ThermalConductivity  Float  `json:"thermal_conductivity"`
	Density              Float  `json:"density"`
	Viscosity            Float  `json:"viscosity"`
}

func (m PhysicsMaterial) MarshalJSON() ([]byte, error) {
	return json.Marshal(physicsMaterialJSON{
		Name:                 m.Name,
		Phase:                m.Phase,
		SpecificHeatCapacity: Float(m.SpecificHeatCapacity),
		ThermalConductivity:  Float(m.ThermalConductivity),
		Density:              Float(m.Density),
		Viscosity:            Float(m.Viscosity),
	})
}

func (m *PhysicsMaterial) UnmarshalJSON(b []byte) error {
	var v physicsMaterialJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = PhysicsMaterial{
		Name:                 v.Name,
		Phase:                v.Phase,
		SpecificHeatCapacity: float32(v.SpecificHeatCapacity),
		ThermalConductivity:  float32(v.ThermalConductivity),
		Density:              float32(v.Density),
		Viscosity:            float32(v.Viscosity),
	}
	return nil
}

// 体素物性参数，由宏观物性参数和体素边长计算得到
type VoxelMaterial struct {
	Phase             Phase
	Mass              Mass
	ThermalResistance ThermalResistance // 半个体素宽度上的热阻
	HeatCapacity      HeatCapacity
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 计算参数，由前端通过 env 消息设置
type Env struct {
	TimeStep     Time `json:"time_step"`
	Iterations   int  `json:"iterations"`
	PushInterval int  `json:"push_interval"`
}
