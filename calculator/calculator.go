package calculator

import "voxheat/model"

// calculator 的接口定义

type Calculator interface {
	// 构建推送数据
	BuildData() *TemperatureFieldData

	// 获取CalcHub
	GetCalcHub() *CalcHub

	// 设置计算参数
	SetTimeStep(timeStep model.Time)
	SetPushInterval(pushInterval int)

	// 计算一个时间步
	Step() error

	// 运行，iterations <= 0 时一直运行到停止信号
	Run(iterations int) error
}
