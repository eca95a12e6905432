package material

import (
	"errors"
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"voxheat/model"
)

var (
	ErrNotFound      = errors.New("material: not found")
	ErrDuplicateName = errors.New("material: duplicate name")
	ErrFrozen        = errors.New("material: lookup is frozen")
)

// 由宏观物性参数计算体素物性参数
//  volume = length^3
//  mass = density * volume
//  thermal_resistance = 1 / (2 * thermal_conductivity * length)
//  heat_capacity = mass * specific_heat_capacity
func Derive(m model.PhysicsMaterial, length model.Length) model.VoxelMaterial {
	volume := length * length * length
	mass := m.Density * volume
	resistance := float32(math.Inf(1))
	if m.ThermalConductivity != 0 {
		resistance = 1 / (2 * m.ThermalConductivity * length)
	}
	heatCapacity := mass * m.SpecificHeatCapacity
	if mass == 0 {
		// 0 * inf 为 NaN，质量为零时热容也为零
		heatCapacity = 0
	}
	return model.VoxelMaterial{
		Phase:             m.Phase,
		Mass:              mass,
		ThermalResistance: resistance,
		HeatCapacity:      heatCapacity,
	}
}

// 材料表，材料编号为注册时的下标
// 计算开始前调用 Freeze，之后只读
type Lookup struct {
	length    model.Length
	nameToId  map[string]model.MaterialId
	names     []string
	materials []model.VoxelMaterial
	frozen    bool
}

func NewLookup(length model.Length) *Lookup {
	return &Lookup{
		length:   length,
		nameToId: make(map[string]model.MaterialId),
	}
}

func (l *Lookup) Add(m model.PhysicsMaterial) (model.MaterialId, error) {
	if l.frozen {
		return 0, fmt.Errorf("%w: add %q", ErrFrozen, m.Name)
	}
	if id, ok := l.nameToId[m.Name]; ok {
		return 0, fmt.Errorf("%w: %q already registered as %d", ErrDuplicateName, m.Name, id)
	}
	id := model.MaterialId(len(l.materials))
	vm := Derive(m, l.length)
	l.nameToId[m.Name] = id
	l.names = append(l.names, m.Name)
	l.materials = append(l.materials, vm)
	log.WithFields(log.Fields{
		"id":                 id,
		"name":               m.Name,
		"phase":              vm.Phase,
		"mass":               vm.Mass,
		"thermal_resistance": vm.ThermalResistance,
		"heat_capacity":      vm.HeatCapacity,
	}).Debug("注册材料")
	return id, nil
}

func (l *Lookup) Id(name string) (model.MaterialId, error) {
	id, ok := l.nameToId[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return id, nil
}

func (l *Lookup) Material(id model.MaterialId) (model.VoxelMaterial, error) {
	if int(id) >= len(l.materials) {
		return model.VoxelMaterial{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return l.materials[id], nil
}

func (l *Lookup) Name(id model.MaterialId) (string, error) {
	if int(id) >= len(l.names) {
		return "", fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return l.names[id], nil
}

func (l *Lookup) Len() int {
	return len(l.materials)
}

func (l *Lookup) Length() model.Length {
	return l.length
}

func (l *Lookup) Names() []string {
	names := make([]string, len(l.names))
	copy(names, l.names)
	return names
}

// 体素物性参数表的拷贝，下标即材料编号
func (l *Lookup) Materials() []model.VoxelMaterial {
	materials := make([]model.VoxelMaterial, len(l.materials))
	copy(materials, l.materials)
	return materials
}

func (l *Lookup) Freeze() {
	l.frozen = true
}

func (l *Lookup) Frozen() bool {
	return l.frozen
}
