package scenario

import (
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	log "github.com/sirupsen/logrus"
	"github.com/zclconf/go-cty/cty"
	"voxheat/material"
	"voxheat/model"
	"voxheat/volume"
)

var ErrInvalidBox = errors.New("scenario: invalid box")

// 初始材料场和温度场的描述
//
//	ambient_temperature = kelvin.room
//	default_material    = "Hardwood"
//
//	frame {
//	  material  = "Iron"
//	  min_edges = 2
//	}
//
//	box "core" {
//	  material    = "Water"
//	  from        = [1, 1, 1]
//	  to          = [3, 2, 1]
//	  temperature = kelvin.water_boiling
//	}
//
//	pin "hot" {
//	  at          = [grid.x - 1, grid.y - 1, grid.z - 1]
//	  temperature = kelvin.tungsten_melting
//	}
type Scenario struct {
	AmbientTemperature model.Temperature
	DefaultMaterial    string
	Frame              *Frame
	Boxes              []Box
	Pins               []Pin
}

type Frame struct {
	Material string
	MinEdges int
}

type Box struct {
	Name        string
	Material    string // 为空时不修改材料
	From, To    [3]int // 闭区间
	Temperature *model.Temperature
}

type Pin struct {
	Name        string
	At          [3]int
	Material    string
	Temperature model.Temperature
}

type fileRoot struct {
	AmbientTemperature *float64    `hcl:"ambient_temperature,optional"`
	DefaultMaterial    *string     `hcl:"default_material,optional"`
	Frame              *frameBlock `hcl:"frame,block"`
	Boxes              []*boxBlock `hcl:"box,block"`
	Pins               []*pinBlock `hcl:"pin,block"`
}

type frameBlock struct {
	Material string `hcl:"material"`
	MinEdges *int   `hcl:"min_edges,optional"`
}

type boxBlock struct {
	Name        string   `hcl:"name,label"`
	Material    *string  `hcl:"material,optional"`
	From        []int    `hcl:"from"`
	To          []int    `hcl:"to"`
	Temperature *float64 `hcl:"temperature,optional"`
}

type pinBlock struct {
	Name        string  `hcl:"name,label"`
	At          []int   `hcl:"at"`
	Material    *string `hcl:"material,optional"`
	Temperature float64 `hcl:"temperature"`
}

// 场景文件中可以使用的变量
func evalContext(size model.Size) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"kelvin": cty.ObjectVal(map[string]cty.Value{
				"absolute_zero":    cty.NumberFloatVal(float64(model.AbsoluteZero)),
				"water_freezing":   cty.NumberFloatVal(float64(model.WaterFreezing)),
				"room":             cty.NumberFloatVal(float64(model.RoomTemperature)),
				"water_boiling":    cty.NumberFloatVal(float64(model.WaterBoiling)),
				"tungsten_melting": cty.NumberFloatVal(float64(model.TungstenMelting)),
			}),
			"grid": cty.ObjectVal(map[string]cty.Value{
				"x": cty.NumberIntVal(int64(size.X)),
				"y": cty.NumberIntVal(int64(size.Y)),
				"z": cty.NumberIntVal(int64(size.Z)),
			}),
		},
	}
}

func Load(path string, size model.Size) (*Scenario, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}
	return Parse(src, path, size)
}

func Parse(src []byte, filename string, size model.Size) (*Scenario, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scenario %s: %w", filename, diags)
	}
	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(size), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", filename, diags)
	}

	var err error
	s := &Scenario{
		AmbientTemperature: model.RoomTemperature,
		DefaultMaterial:    material.Hardwood.Name,
	}
	if root.AmbientTemperature != nil {
		s.AmbientTemperature = model.Temperature(*root.AmbientTemperature)
	}
	if root.DefaultMaterial != nil {
		s.DefaultMaterial = *root.DefaultMaterial
	}
	if root.Frame != nil {
		s.Frame = &Frame{Material: root.Frame.Material, MinEdges: 2}
		if root.Frame.MinEdges != nil {
			s.Frame.MinEdges = *root.Frame.MinEdges
		}
	}
	for _, b := range root.Boxes {
		box := Box{Name: b.Name}
		if box.From, err = coordinate(b.From); err != nil {
			return nil, fmt.Errorf("box %q from: %w", b.Name, err)
		}
		if box.To, err = coordinate(b.To); err != nil {
			return nil, fmt.Errorf("box %q to: %w", b.Name, err)
		}
		if b.Material != nil {
			box.Material = *b.Material
		}
		if b.Temperature != nil {
			t := model.Temperature(*b.Temperature)
			box.Temperature = &t
		}
		s.Boxes = append(s.Boxes, box)
	}
	for _, p := range root.Pins {
		pin := Pin{
			Name:        p.Name,
			Material:    material.InfiniteHeatSink.Name,
			Temperature: model.Temperature(p.Temperature),
		}
		if pin.At, err = coordinate(p.At); err != nil {
			return nil, fmt.Errorf("pin %q at: %w", p.Name, err)
		}
		if p.Material != nil {
			pin.Material = *p.Material
		}
		s.Pins = append(s.Pins, pin)
	}
	log.WithFields(log.Fields{
		"file":  filename,
		"boxes": len(s.Boxes),
		"pins":  len(s.Pins),
	}).Info("读取场景文件")
	return s, nil
}

func coordinate(v []int) ([3]int, error) {
	var c [3]int
	if len(v) != 3 {
		return c, fmt.Errorf("want 3 coordinates, got %d", len(v))
	}
	copy(c[:], v)
	return c, nil
}

// 按场景初始化材料场和温度场
// 名称未注册或坐标越界时返回错误
func (s *Scenario) Apply(m *volume.Volume[model.MaterialId], temperature *volume.Volume[model.Temperature], lookup *material.Lookup) error {
	if m.Size() != temperature.Size() {
		return fmt.Errorf("scenario: material size %v differs from temperature size %v", m.Size(), temperature.Size())
	}
	id, err := lookup.Id(s.DefaultMaterial)
	if err != nil {
		return fmt.Errorf("default material: %w", err)
	}
	m.Fill(id)
	temperature.Fill(s.AmbientTemperature)

	if s.Frame != nil {
		if err := FillFrame(m, lookup, s.Frame.Material, s.Frame.MinEdges); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
	}
	for _, b := range s.Boxes {
		if err := b.apply(m, temperature, lookup); err != nil {
			return fmt.Errorf("box %q: %w", b.Name, err)
		}
	}
	for _, p := range s.Pins {
		id, err := lookup.Id(p.Material)
		if err != nil {
			return fmt.Errorf("pin %q: %w", p.Name, err)
		}
		if err := m.Set(p.At[0], p.At[1], p.At[2], id); err != nil {
			return fmt.Errorf("pin %q: %w", p.Name, err)
		}
		_ = temperature.Set(p.At[0], p.At[1], p.At[2], p.Temperature)
	}
	return nil
}

func (b *Box) apply(m *volume.Volume[model.MaterialId], temperature *volume.Volume[model.Temperature], lookup *material.Lookup) error {
	for i := 0; i < 3; i++ {
		if b.From[i] > b.To[i] {
			return fmt.Errorf("%w: from %v is beyond to %v", ErrInvalidBox, b.From, b.To)
		}
	}
	if _, err := m.Index(b.From[0], b.From[1], b.From[2]); err != nil {
		return err
	}
	if _, err := m.Index(b.To[0], b.To[1], b.To[2]); err != nil {
		return err
	}
	var id model.MaterialId
	if b.Material != "" {
		var err error
		if id, err = lookup.Id(b.Material); err != nil {
			return err
		}
	}
	for z := b.From[2]; z <= b.To[2]; z++ {
		for y := b.From[1]; y <= b.To[1]; y++ {
			for x := b.From[0]; x <= b.To[0]; x++ {
				i, _ := m.Index(x, y, z)
				if b.Material != "" {
					m.SetAt(i, id)
				}
				if b.Temperature != nil {
					temperature.SetAt(i, *b.Temperature)
				}
			}
		}
	}
	return nil
}
