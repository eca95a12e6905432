package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"voxheat/calculator"
	"voxheat/config"
	"voxheat/material"
	"voxheat/model"
	"voxheat/scenario"
	"voxheat/server"
	"voxheat/volume"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func main() {
	configPath := flag.String("config", "conf/config.ini", "配置文件路径")
	mode := flag.String("mode", "batch", "运行方式: batch | serve")
	scenarioPath := flag.String("scenario", "", "场景文件路径，覆盖配置文件")
	dumpWidth := flag.Int("dump-width", 10, "打印网格时每个值的宽度")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.SetupLog()
	if *scenarioPath != "" {
		cfg.Simulation.Scenario = *scenarioPath
	}

	switch *mode {
	case "batch":
		err = runBatch(cfg.Simulation, *dumpWidth)
	case "serve":
		upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
		env := model.Env{
			TimeStep:     cfg.Simulation.TimeStep,
			Iterations:   cfg.Simulation.Iterations,
			PushInterval: cfg.Simulation.PushInterval,
		}
		s := server.NewServer(cfg.Server.Addr, upgrader, func() (calculator.Calculator, error) {
			return newSimulation(cfg.Simulation)
		}, env)
		err = s.Serve()
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// 按配置创建材料表、初始场和计算实例
func newSimulation(cfg config.Simulation) (*calculator.Simulation, error) {
	var (
		lookup *material.Lookup
		err    error
	)
	if cfg.Materials != "" {
		lookup, err = material.LoadLookup(cfg.Materials, cfg.VoxelEdgeLength)
	} else {
		lookup, err = material.DefaultLookup(cfg.VoxelEdgeLength)
	}
	if err != nil {
		return nil, err
	}

	m, err := volume.New[model.MaterialId](cfg.Size, 0)
	if err != nil {
		return nil, err
	}
	temperature, err := volume.New[model.Temperature](cfg.Size, model.RoomTemperature)
	if err != nil {
		return nil, err
	}
	if cfg.Scenario != "" {
		s, err := scenario.Load(cfg.Scenario, cfg.Size)
		if err != nil {
			return nil, err
		}
		if err := s.Apply(m, temperature, lookup); err != nil {
			return nil, err
		}
	} else {
		if err := scenario.FillTestMaterial(m, lookup); err != nil {
			return nil, err
		}
		if err := scenario.FillHeatSourceAndSink(m, temperature, lookup); err != nil {
			return nil, err
		}
	}
	return calculator.NewSimulation(m, temperature, lookup, cfg.TimeStep)
}

func runBatch(cfg config.Simulation, dumpWidth int) error {
	s, err := newSimulation(cfg)
	if err != nil {
		return err
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("batch mode needs a positive iteration count, got %d", cfg.Iterations)
	}
	if err := s.Run(cfg.Iterations); err != nil {
		return err
	}

	out := os.Stdout
	fmt.Fprint(out, "material\n\n")
	if err := s.Material().Fprint(out, dumpWidth); err != nil {
		return err
	}
	fmt.Fprint(out, "temperature\n\n")
	if err := s.Temperature().Fprint(out, dumpWidth); err != nil {
		return err
	}
	fmt.Fprint(out, "heat\n\n")
	return s.Heat().Fprint(out, dumpWidth)
}
