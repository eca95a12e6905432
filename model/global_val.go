package model

// 物理量单位约定
// 1. 长度：米
// 2. 温度：开尔文
// 3. 时间：秒
// 4. 热流：瓦特

type (
	Length               = float32 // m
	Temperature          = float32 // K
	Density              = float32 // kg / 单位体积
	Mass                 = float32 // kg
	Viscosity            = float32 // 不参与传热计算
	ThermalConductivity  = float32 // W / (m·K)
	ThermalResistance    = float32 // K / W
	SpecificHeatCapacity = float32 // J / (kg·K)
	HeatCapacity         = float32 // J / K
	HeatTransferRate     = float32 // W
	Time                 = float32 // s
)

// 材料编号，对应 material.Lookup 中的下标
type MaterialId uint32

// 常用温度
const (
	AbsoluteZero    Temperature = 0
	WaterFreezing   Temperature = 273.15
	RoomTemperature Temperature = 293.15
	WaterBoiling    Temperature = 373.15
	TungstenMelting Temperature = 3695
)

// 网格尺寸
type Size struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

func (s Size) Len() int {
	return s.X * s.Y * s.Z
}
