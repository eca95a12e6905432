package config

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
	"voxheat/model"
)

type Config struct {
	Simulation Simulation
	Server     Server
	Log        Log
}

type Simulation struct {
	Size            model.Size
	VoxelEdgeLength model.Length // m
	TimeStep        model.Time   // s
	Iterations      int          // 批量计算的步数
	PushInterval    int          // 每计算多少步推送一次
	Scenario        string       // 场景文件，为空时使用默认场景
	Materials       string       // 材料文件，为空时使用默认材料表
}

type Server struct {
	Addr string
}

type Log struct {
	Level string
}

// 读取配置文件，文件不存在时使用默认配置
func Load(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.WithField("path", path).Warn("配置文件不存在，使用默认配置")
		return loadCfg(ini.Empty()), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("配置文件读取错误，请检查文件路径: %w", err)
	}
	cfg := loadCfg(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadCfg(file *ini.File) Config {
	sim := file.Section("simulation")
	return Config{
		Simulation: Simulation{
			Size: model.Size{
				X: sim.Key("SizeX").MustInt(5),
				Y: sim.Key("SizeY").MustInt(4),
				Z: sim.Key("SizeZ").MustInt(3),
			},
			VoxelEdgeLength: float32(sim.Key("VoxelEdgeLength").MustFloat64(4.0)),
			TimeStep:        float32(sim.Key("TimeStep").MustFloat64(100.0)),
			Iterations:      sim.Key("Iterations").MustInt(10000),
			PushInterval:    sim.Key("PushInterval").MustInt(100),
			Scenario:        sim.Key("Scenario").String(),
			Materials:       sim.Key("Materials").String(),
		},
		Server: Server{
			Addr: file.Section("server").Key("Addr").MustString(":9000"),
		},
		Log: Log{
			Level: file.Section("log").Key("Level").MustString("info"),
		},
	}
}

func (c Config) Validate() error {
	s := c.Simulation
	if s.Size.X <= 0 || s.Size.Y <= 0 || s.Size.Z <= 0 {
		return fmt.Errorf("config: invalid grid size %dx%dx%d", s.Size.X, s.Size.Y, s.Size.Z)
	}
	if s.VoxelEdgeLength <= 0 {
		return fmt.Errorf("config: invalid voxel edge length %v", s.VoxelEdgeLength)
	}
	if s.TimeStep <= 0 {
		return fmt.Errorf("config: invalid time step %v", s.TimeStep)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// 按配置设置日志等级
func (c Config) SetupLog() {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
