/**
 *
 * 稠密三维数组，用于存放每个体素上的材料编号、温度和热流
 * 数据按 x -> y -> z 的顺序线性存放：index = (z*Y + y)*X + x
 * 尺寸在创建时确定，之后不再改变
 *
 */

package volume

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"voxheat/model"
)

var (
	ErrInvalidSize = errors.New("volume: invalid size")
	ErrOutOfBounds = errors.New("volume: coordinate out of bounds")
)

// 坐标越界
type OutOfBoundsError struct {
	X, Y, Z int
	Size    model.Size
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("volume: coordinate (%d, %d, %d) out of bounds %dx%dx%d",
		e.X, e.Y, e.Z, e.Size.X, e.Size.Y, e.Size.Z)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

type Volume[T any] struct {
	size model.Size
	data []T
}

// 工厂方法
func New[T any](size model.Size, initial T) (*Volume[T], error) {
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidSize, size.X, size.Y, size.Z)
	}
	data := make([]T, size.Len())
	for i := range data {
		data[i] = initial
	}
	return &Volume[T]{size: size, data: data}, nil
}

func (v *Volume[T]) Size() model.Size {
	return v.size
}

func (v *Volume[T]) Len() int {
	return len(v.data)
}

func (v *Volume[T]) Contains(x, y, z int) bool {
	return x >= 0 && x < v.size.X && y >= 0 && y < v.size.Y && z >= 0 && z < v.size.Z
}

// 坐标转换为线性下标
func (v *Volume[T]) Index(x, y, z int) (int, error) {
	if !v.Contains(x, y, z) {
		return 0, &OutOfBoundsError{X: x, Y: y, Z: z, Size: v.size}
	}
	return (z*v.size.Y+y)*v.size.X + x, nil
}

// 线性下标转换为坐标
func (v *Volume[T]) Coordinate(i int) (x, y, z int) {
	x = i % v.size.X
	y = i / v.size.X % v.size.Y
	z = i / (v.size.X * v.size.Y)
	return
}

func (v *Volume[T]) Get(x, y, z int) (T, error) {
	i, err := v.Index(x, y, z)
	if err != nil {
		var zero T
		return zero, err
	}
	return v.data[i], nil
}

func (v *Volume[T]) Set(x, y, z int, value T) error {
	i, err := v.Index(x, y, z)
	if err != nil {
		return err
	}
	v.data[i] = value
	return nil
}

// 按线性下标访问，调用方保证 0 <= i < Len()
func (v *Volume[T]) At(i int) T {
	return v.data[i]
}

func (v *Volume[T]) SetAt(i int, value T) {
	v.data[i] = value
}

// 返回底层数据，只读
func (v *Volume[T]) Data() []T {
	return v.data
}

func (v *Volume[T]) Fill(value T) {
	for i := range v.data {
		v.data[i] = value
	}
}

func (v *Volume[T]) Clone() *Volume[T] {
	data := make([]T, len(v.data))
	copy(data, v.data)
	return &Volume[T]{size: v.size, data: data}
}

// 正向遍历
func (v *Volume[T]) Traverse(f func(x, y, z int, value T)) {
	i := 0
	for z := 0; z < v.size.Z; z++ {
		for y := 0; y < v.size.Y; y++ {
			for x := 0; x < v.size.X; x++ {
				f(x, y, z, v.data[i])
				i++
			}
		}
	}
}

// 按层打印，每个值截断或补齐到 width 个字符
func (v *Volume[T]) Fprint(w io.Writer, width int) error {
	var sb strings.Builder
	v.Traverse(func(x, y, z int, value T) {
		s := fmt.Sprint(value)
		if width > 0 {
			if len(s) > width {
				s = s[:width]
			} else {
				s += strings.Repeat(" ", width-len(s))
			}
		}
		sb.WriteString(s)
		sb.WriteByte(' ')
		if x == v.size.X-1 {
			sb.WriteByte('\n')
			if y == v.size.Y-1 {
				sb.WriteByte('\n')
			}
		}
	})
	_, err := io.WriteString(w, sb.String())
	return err
}
