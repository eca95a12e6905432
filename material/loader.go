package material

import (
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"voxheat/model"
)

// 从 json 文件读取材料物性参数，文件中的顺序即注册顺序
func LoadFile(path string) ([]model.PhysicsMaterial, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read material file: %w", err)
	}
	var materials []model.PhysicsMaterial
	if err := json.Unmarshal(data, &materials); err != nil {
		return nil, fmt.Errorf("parse material file %s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"path":  path,
		"count": len(materials),
	}).Info("读取材料文件")
	return materials, nil
}

// 读取材料文件并注册到新的 Lookup 中
func LoadLookup(path string, length model.Length) (*Lookup, error) {
	materials, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	l := NewLookup(length)
	for _, m := range materials {
		if _, err := l.Add(m); err != nil {
			return nil, err
		}
	}
	return l, nil
}
