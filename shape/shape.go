// 方块形状: 以枢轴(0,0)为原点的格子偏移集合
package shape

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidShapeData 形状数据有误(空形状或重复格子),只会在加载内容时出现
var ErrInvalidShapeData = errors.New("invalid shape data")

// Offset 相对于枢轴的格子偏移
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Shape 不可变的方块模板,运行时只读共享
type Shape struct {
	id     string
	color  string
	weight int
	turns  int
	cells  []Offset
	min    Offset
	max    Offset
}

// New 构造形状,cells 会被复制
func New(id, color string, cells []Offset) (*Shape, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("shape %q: no cells: %w", id, ErrInvalidShapeData)
	}
	seen := make(map[Offset]struct{}, len(cells))
	for _, c := range cells {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("shape %q: duplicate cell (%d,%d): %w", id, c.X, c.Y, ErrInvalidShapeData)
		}
		seen[c] = struct{}{}
	}
	own := make([]Offset, len(cells))
	copy(own, cells)
	return build(id, color, 1, own), nil
}

// FromRows 用字符画描述形状, '.' 和空格为空, 其余字符为格子
// 行号对应 dy, 列号对应 dx, 枢轴在左上角
func FromRows(id, color string, rows ...string) (*Shape, error) {
	var cells []Offset
	for y, row := range rows {
		for x, r := range []rune(row) {
			if r == '.' || r == ' ' {
				continue
			}
			cells = append(cells, Offset{X: x, Y: y})
		}
	}
	return New(id, color, cells)
}

// MustFromRows 用于内置模板, 数据错误直接 panic
func MustFromRows(id, color string, rows ...string) *Shape {
	s, err := FromRows(id, color, rows...)
	if err != nil {
		panic(err)
	}
	return s
}

func build(id, color string, weight int, cells []Offset) *Shape {
	s := &Shape{id: id, color: color, weight: weight, cells: cells}
	if len(cells) > 0 {
		s.min, s.max = cells[0], cells[0]
		for _, c := range cells[1:] {
			s.min.X = min(s.min.X, c.X)
			s.min.Y = min(s.min.Y, c.Y)
			s.max.X = max(s.max.X, c.X)
			s.max.Y = max(s.max.Y, c.Y)
		}
	}
	return s
}

func (s *Shape) ID() string    { return s.id }
func (s *Shape) Color() string { return s.color }

// Weight 生成权重, 最小为 1
func (s *Shape) Weight() int { return s.weight }

// WithWeight 返回权重不同的副本
func (s *Shape) WithWeight(w int) *Shape {
	if w < 1 {
		w = 1
	}
	c := *s
	c.weight = w
	return &c
}

// WithColor 返回颜色不同的副本
func (s *Shape) WithColor(color string) *Shape {
	c := *s
	c.color = color
	return &c
}

// Offsets 返回内部切片, 调用方不得修改
func (s *Shape) Offsets() []Offset { return s.cells }

func (s *Shape) CellCount() int { return len(s.cells) }

// Bounds 返回最小和最大偏移, 空形状返回零值
func (s *Shape) Bounds() (Offset, Offset) { return s.min, s.max }

func (s *Shape) Width() int {
	if len(s.cells) == 0 {
		return 0
	}
	return s.max.X - s.min.X + 1
}

func (s *Shape) Height() int {
	if len(s.cells) == 0 {
		return 0
	}
	return s.max.Y - s.min.Y + 1
}

// Contains 判断偏移是否属于该形状
func (s *Shape) Contains(o Offset) bool {
	for _, c := range s.cells {
		if c == o {
			return true
		}
	}
	return false
}

// Rotated 顺时针旋转 k 次 90 度, (x,y) -> (y,-x), 不修改原形状
func (s *Shape) Rotated(k int) *Shape {
	k = ((k % 4) + 4) % 4
	cells := make([]Offset, len(s.cells))
	for i, c := range s.cells {
		for range k {
			c = Offset{X: c.Y, Y: -c.X}
		}
		cells[i] = c
	}
	turns := (s.turns + k) % 4
	id := s.id
	if s.turns != 0 {
		id = baseID(id)
	}
	if turns != 0 {
		id = fmt.Sprintf("%s@%d", id, turns*90)
	}
	r := build(id, s.color, s.weight, cells)
	r.turns = turns
	return r
}

// Canonical 平移到最小偏移为 (0,0)
func (s *Shape) Canonical() *Shape {
	cells := make([]Offset, len(s.cells))
	for i, c := range s.cells {
		cells[i] = Offset{X: c.X - s.min.X, Y: c.Y - s.min.Y}
	}
	r := build(s.id, s.color, s.weight, cells)
	r.turns = s.turns
	return r
}

// Equal 偏移集合相同即相等, 忽略 id 和颜色
func (s *Shape) Equal(o *Shape) bool {
	if len(s.cells) != len(o.cells) {
		return false
	}
	for _, c := range s.cells {
		if !o.Contains(c) {
			return false
		}
	}
	return true
}

// Rows 以字符画形式输出, 用于日志和调试
func (s *Shape) Rows() []string {
	w, h := s.Width(), s.Height()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		var b strings.Builder
		for x := 0; x < w; x++ {
			if s.Contains(Offset{X: x + s.min.X, Y: y + s.min.Y}) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[y] = b.String()
	}
	return rows
}

func (s *Shape) String() string {
	return s.id + "[" + strings.Join(s.Rows(), "/") + "]"
}

func baseID(id string) string {
	if i := strings.LastIndexByte(id, '@'); i >= 0 {
		return id[:i]
	}
	return id
}

// Rotations 返回所有互不相同的旋转结果(平移到原点并去重), 第一个是原形状
func (s *Shape) Rotations() []*Shape {
	out := []*Shape{s}
	for k := 1; k < 4; k++ {
		r := s.Rotated(k)
		rc := r.Canonical()
		dup := false
		for _, seen := range out {
			if seen.Canonical().Equal(rc) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, rc)
		}
	}
	return out
}
