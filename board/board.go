// Package board 方块棋盘: 占用状态、合法性检查与消行
package board

import (
	"errors"
	"fmt"

	"github.com/hoshinonyaruko/block-in-im/shape"
)

var (
	ErrInvalidSize  = errors.New("board size must be positive")
	ErrOutOfBounds  = errors.New("out of bounds")
	ErrCellOccupied = errors.New("cell occupied")
)

// Cell 一个格子, Color 仅用于渲染
type Cell struct {
	Occupied bool   `json:"occupied"`
	Color    string `json:"color,omitempty"`
}

// Board 宽高固定的占用网格, 按行优先存储: index = y*width + x
type Board struct {
	width  int
	height int
	cells  []Cell
}

func New(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

func (b *Board) IsInside(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

func (b *Board) index(x, y int) int { return y*b.width + x }

// At 返回格子, 越界返回 ErrOutOfBounds
func (b *Board) At(x, y int) (Cell, error) {
	if !b.IsInside(x, y) {
		return Cell{}, fmt.Errorf("cell (%d,%d): %w", x, y, ErrOutOfBounds)
	}
	return b.cells[b.index(x, y)], nil
}

// IsEmpty 越界是调用方错误, 返回 ErrOutOfBounds 而不是默认值
func (b *Board) IsEmpty(x, y int) (bool, error) {
	c, err := b.At(x, y)
	if err != nil {
		return false, err
	}
	return !c.Occupied, nil
}

// Place 把形状的每个格子标记为占用, 返回绝对坐标.
// 不做校验: 调用前必须先 Check, 否则会写坏状态或越界 panic.
func (b *Board) Place(s *shape.Shape, ax, ay int) []shape.Offset {
	placed := make([]shape.Offset, 0, s.CellCount())
	for _, o := range s.Offsets() {
		x, y := ax+o.X, ay+o.Y
		b.cells[b.index(x, y)] = Cell{Occupied: true, Color: s.Color()}
		placed = append(placed, shape.Offset{X: x, Y: y})
	}
	return placed
}

func (b *Board) ClearRow(y int) {
	for x := 0; x < b.width; x++ {
		b.cells[b.index(x, y)] = Cell{}
	}
}

func (b *Board) ClearColumn(x int) {
	for y := 0; y < b.height; y++ {
		b.cells[b.index(x, y)] = Cell{}
	}
}

// ClearAll 新游戏时重置
func (b *Board) ClearAll() {
	clear(b.cells)
}

// Occupied 已占用格子数
func (b *Board) Occupied() int {
	n := 0
	for _, c := range b.cells {
		if c.Occupied {
			n++
		}
	}
	return n
}

// Snapshot 返回按行的副本, 供渲染和查询使用
func (b *Board) Snapshot() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range rows {
		rows[y] = make([]Cell, b.width)
		copy(rows[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return rows
}

func (b *Board) rowFull(y int) bool {
	for x := 0; x < b.width; x++ {
		if !b.cells[b.index(x, y)].Occupied {
			return false
		}
	}
	return true
}

func (b *Board) columnFull(x int) bool {
	for y := 0; y < b.height; y++ {
		if !b.cells[b.index(x, y)].Occupied {
			return false
		}
	}
	return true
}
