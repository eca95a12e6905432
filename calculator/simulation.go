package calculator

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"voxheat/material"
	"voxheat/model"
	"voxheat/volume"
)

var _ Calculator = (*Simulation)(nil)

// 显式（前向欧拉）传热计算
// 每个时间步先根据当前温度场计算完整的热流场，再将热流场作用于温度场，两个阶段不交叉
type Simulation struct {
	material    *MaterialField
	temperature *TemperatureField
	heat        *HeatField // 每步重新计算，不保留状态

	lookup *material.Lookup
	table  []model.VoxelMaterial

	timeStep       model.Time
	stableTimeStep model.Time
	pushInterval   int // 每计算多少步推送一次，0 表示不推送

	tick    int
	elapsed float64

	calcHub *CalcHub
	logger  *log.Entry

	mu sync.Mutex // 保护 BuildData 时对温度数据的并发访问
}

func NewSimulation(materialField *MaterialField, temperature *TemperatureField, lookup *material.Lookup, timeStep model.Time) (*Simulation, error) {
	if materialField.Size() != temperature.Size() {
		return nil, fmt.Errorf("%w: material %v, temperature %v",
			ErrSizeMismatch, materialField.Size(), temperature.Size())
	}
	lookup.Freeze()
	table := lookup.Materials()
	if err := checkMaterial(materialField, table); err != nil {
		return nil, err
	}
	heat, err := volume.New[model.HeatTransferRate](materialField.Size(), 0)
	if err != nil {
		return nil, err
	}
	stable, err := StableTimeStep(materialField, table)
	if err != nil {
		return nil, err
	}

	size := materialField.Size()
	s := &Simulation{
		material:       materialField,
		temperature:    temperature,
		heat:           heat,
		lookup:         lookup,
		table:          table,
		stableTimeStep: stable,
		calcHub:        NewCalcHub(),
		logger: log.WithFields(log.Fields{
			"size": fmt.Sprintf("%dx%dx%d", size.X, size.Y, size.Z),
		}),
	}
	s.SetTimeStep(timeStep)
	return s, nil
}

func (s *Simulation) GetCalcHub() *CalcHub {
	return s.calcHub
}

// 不做自适应调整，超过稳定步长时只给出警告
func (s *Simulation) SetTimeStep(timeStep model.Time) {
	s.mu.Lock()
	s.timeStep = timeStep
	s.mu.Unlock()
	fields := log.Fields{
		"timeStep":       timeStep,
		"stableTimeStep": s.stableTimeStep,
	}
	if timeStep > s.stableTimeStep {
		s.logger.WithFields(fields).Warn("时间步长超过显式格式的稳定上限，结果可能振荡发散")
		return
	}
	s.logger.WithFields(fields).Info("设置时间步长")
}

func (s *Simulation) SetPushInterval(pushInterval int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pushInterval < 0 {
		pushInterval = 0
	}
	s.pushInterval = pushInterval
}

func (s *Simulation) TimeStep() model.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeStep
}

func (s *Simulation) StableTimeStep() model.Time {
	return s.stableTimeStep
}

func (s *Simulation) Material() *MaterialField {
	return s.material
}

func (s *Simulation) Temperature() *TemperatureField {
	return s.temperature
}

func (s *Simulation) Heat() *HeatField {
	return s.heat
}

func (s *Simulation) Lookup() *material.Lookup {
	return s.lookup
}

func (s *Simulation) Tick() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick
}

// 已模拟的时间，秒
func (s *Simulation) Elapsed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// 计算一个时间步：1. 计算热流场 2. 更新温度场
func (s *Simulation) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := CalculateHeatTransfer(s.material, s.temperature, s.heat, s.table); err != nil {
		return err
	}
	if err := ApplyHeat(s.material, s.temperature, s.heat, s.table, s.timeStep); err != nil {
		return err
	}
	s.tick++
	s.elapsed += float64(s.timeStep)
	return nil
}

func (s *Simulation) Run(iterations int) error {
	start := time.Now()
	count := 0
	var err error
LOOP:
	for iterations <= 0 || count < iterations {
		select {
		case <-s.calcHub.Stop():
			s.logger.WithField("tick", s.Tick()).Info("收到停止信号")
			break LOOP
		default:
			if err = s.Step(); err != nil {
				break LOOP
			}
			count++
			s.mu.Lock()
			push := s.pushInterval > 0 && s.tick%s.pushInterval == 0
			s.mu.Unlock()
			if push {
				s.calcHub.PushSignal()
			}
		}
	}
	s.logger.WithFields(log.Fields{
		"iterations": count,
		"tick":       s.Tick(),
		"elapsed":    s.Elapsed(),
		"duration":   time.Since(start),
	}).Info("计算结束")
	return err
}
